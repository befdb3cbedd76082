package cart

import (
	"encoding/json"
	"testing"
)

func decodeCustomization(t *testing.T, raw string) Customization {
	t.Helper()
	var c Customization
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("decode customization: %v", err)
	}
	return c
}

func TestComputeFingerprintKeyOrderIndependent(t *testing.T) {
	a := decodeCustomization(t, `{"name":"Emma","phone":"+34600111222","color":"pink"}`)
	b := decodeCustomization(t, `{"color":"pink","phone":"+34600111222","name":"Emma"}`)

	if ComputeFingerprint(a) != ComputeFingerprint(b) {
		t.Fatalf("expected identical fingerprints for reordered keys")
	}
}

func TestComputeFingerprintEmpty(t *testing.T) {
	if got := ComputeFingerprint(nil); got != EmptyFingerprint {
		t.Fatalf("nil payload fingerprint = %q, want %q", got, EmptyFingerprint)
	}
	if got := ComputeFingerprint(Customization{}); got != EmptyFingerprint {
		t.Fatalf("empty payload fingerprint = %q, want %q", got, EmptyFingerprint)
	}
	if !EmptyFingerprint.IsEmpty() {
		t.Fatalf("EmptyFingerprint.IsEmpty() = false")
	}
}

func TestComputeFingerprintDistinguishesPayloads(t *testing.T) {
	a := decodeCustomization(t, `{"name":"Emma"}`)
	b := decodeCustomization(t, `{"name":"Lucas"}`)

	if ComputeFingerprint(a) == ComputeFingerprint(b) {
		t.Fatalf("different payloads must not collide")
	}
	if ComputeFingerprint(a).IsEmpty() {
		t.Fatalf("non-empty payload reported empty")
	}
}

func TestComputeFingerprintNestedAndUnicode(t *testing.T) {
	a := decodeCustomization(t, `{"contact":{"name":"María","phone":"+34600111222"},"emoji":"🐶"}`)
	b := decodeCustomization(t, `{"emoji":"🐶","contact":{"phone":"+34600111222","name":"María"}}`)

	if ComputeFingerprint(a) != ComputeFingerprint(b) {
		t.Fatalf("nested payloads with reordered keys must match")
	}
}
