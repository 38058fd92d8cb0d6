package dupescan

import "testing"

func TestVerboseLevel(t *testing.T) {
	orig := GetVerboseLevel()
	defer SetVerboseLevel(orig)

	SetVerboseLevel(3)
	if got := GetVerboseLevel(); got != 3 {
		t.Errorf("GetVerboseLevel = %d, want 3", got)
	}
	SetVerboseLevel(0)
	if got := GetVerboseLevel(); got != 0 {
		t.Errorf("GetVerboseLevel = %d, want 0", got)
	}
}

func TestDebugFlags(t *testing.T) {
	defer SetDebugFlags("")

	SetDebugFlags("scan, digest:false ,MATCH:true")
	if !IsDebugEnabled("scan") {
		t.Error("scan flag not enabled")
	}
	if IsDebugEnabled("digest") {
		t.Error("digest:false flag reported enabled")
	}
	if !IsDebugEnabled("match") {
		t.Error("match flag not enabled (names are case-insensitive)")
	}
	if IsDebugEnabled("other") {
		t.Error("unset flag reported enabled")
	}

	SetDebugFlags("")
	if IsDebugEnabled("scan") {
		t.Error("flags survived a reset")
	}
}
