// Package recorder defines the engine's replay contract: a narrow
// Recorder interface any persistence format can satisfy, plus GobFile, a
// reference implementation over stdlib encoding/gob.
//
// The contract intentionally says nothing about byte layout, compression,
// or versioning — those are choices for whichever concrete Recorder a
// caller picks. GobFile exists to make the engine runnable end to end, not
// to mandate a format.
package recorder
