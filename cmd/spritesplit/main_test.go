package main

import (
	"testing"

	"badc0de.net/pkg/go-spritesplit/atlas"
	"badc0de.net/pkg/go-spritesplit/split"
	"badc0de.net/pkg/go-spritesplit/ttesting"
)

func TestExitCode(t *testing.T) {
	complete := split.Summary{Total: 2, Attempted: 2, Produced: 2}
	partial := split.Summary{
		Total:     3,
		Attempted: 2,
		Produced:  1,
		Skipped:   []atlas.SkippedFrame{{Index: 2, Name: "nox.png", Reason: "invalid frame"}},
		Failed:    []split.FrameError{{Frame: atlas.FrameDescriptor{Index: 1, Name: "outside.png"}}},
	}

	ttesting.AssertEqualInt(t, "complete run", exitCode(complete, false), 0)
	ttesting.AssertEqualInt(t, "skips and failures are not fatal", exitCode(partial, false), 0)
	ttesting.AssertEqualInt(t, "complete run, strict", exitCode(complete, true), 0)
	ttesting.AssertEqualInt(t, "skips and failures, strict", exitCode(partial, true), 1)
}
