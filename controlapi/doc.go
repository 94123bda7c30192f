// Package controlapi is a concrete, swappable implementation of the
// abstract "controller" collaborator spec.md §5/§6 leaves to the caller:
// an HTTP surface built on gin-gonic/gin exposing pause/resume/stop and a
// status read, backed by an engine.Engine.
package controlapi
