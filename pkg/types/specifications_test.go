package types

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSpecificationsEqual(t *testing.T) {
	red := Specifications{"color": StringSpec("red")}
	blue := Specifications{"color": StringSpec("blue")}

	if !red.Equal(Specifications{"color": StringSpec("red")}) {
		t.Fatal("identical specs should be equal")
	}
	if red.Equal(blue) {
		t.Fatal("different values should not be equal")
	}
	if !Specifications(nil).Equal(Specifications{}) {
		t.Fatal("nil and empty specs should be equal")
	}
	if red.Equal(nil) {
		t.Fatal("non-empty spec should differ from nil")
	}
	if (Specifications{"size": NumberSpec(10)}).Equal(Specifications{"size": StringSpec("10")}) {
		t.Fatal("number and string variants must not compare equal")
	}
	multi := Specifications{"size": NumberSpec(42), "gift": BoolSpec(true)}
	if !multi.Equal(Specifications{"gift": BoolSpec(true), "size": NumberSpec(42)}) {
		t.Fatal("key order must not matter")
	}
}

func TestSpecValueEqualNaN(t *testing.T) {
	nan := NumberSpec(math.NaN())
	if !nan.Equal(NumberSpec(math.NaN())) {
		t.Fatal("NaN spec should equal itself")
	}
	if nan.Equal(NumberSpec(0)) {
		t.Fatal("NaN spec should not equal a number")
	}
	if !(Specifications{"w": nan}).Equal(Specifications{"w": NumberSpec(math.NaN())}) {
		t.Fatal("specs holding NaN should compare equal")
	}
}

func TestSpecificationsJSON(t *testing.T) {
	raw := []byte(`{"color":"red","size":42.5,"engraved":false}`)
	var specs Specifications
	if err := json.Unmarshal(raw, &specs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := specs["color"].Str(); !ok || v != "red" {
		t.Fatalf("unexpected color %+v", specs["color"])
	}
	if v, ok := specs["size"].Num(); !ok || v != 42.5 {
		t.Fatalf("unexpected size %+v", specs["size"])
	}
	if v, ok := specs["engraved"].Bool(); !ok || v {
		t.Fatalf("unexpected engraved %+v", specs["engraved"])
	}

	encoded, err := json.Marshal(specs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Specifications
	if err := json.Unmarshal(encoded, &again); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if !again.Equal(specs) {
		t.Fatalf("expected equal after re-encoding: %s", encoded)
	}
}

func TestSpecificationsRejectOpenValues(t *testing.T) {
	for _, raw := range []string{`{"a":null}`, `{"a":[1]}`, `{"a":{"b":1}}`} {
		var specs Specifications
		if err := json.Unmarshal([]byte(raw), &specs); err == nil {
			t.Fatalf("expected %s to be rejected", raw)
		}
	}
	if _, err := json.Marshal(SpecValue{}); err == nil {
		t.Fatal("zero SpecValue should not marshal")
	}
}

func TestSpecificationsCanonicalAndClone(t *testing.T) {
	specs := Specifications{"size": NumberSpec(2), "color": StringSpec("red")}
	if got := specs.Canonical(); got != `"color"="red";"size"=2` {
		t.Fatalf("unexpected canonical form %s", got)
	}
	clone := specs.Clone()
	clone["color"] = StringSpec("blue")
	if v, _ := specs["color"].Str(); v != "red" {
		t.Fatal("clone must not alias the original")
	}
	if Specifications(nil).Clone() != nil {
		t.Fatal("nil clone should stay nil")
	}
}
