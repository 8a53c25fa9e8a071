package fieldtype_test

import (
	"encoding/json"
	"testing"

	"github.com/jcpaschoal/headless-cms/business/types/fieldtype"
)

func TestParse(t *testing.T) {
	for _, v := range []string{"string", "number", "boolean", "date", "richtext", "array", "reference"} {
		ft, err := fieldtype.Parse(v)
		if err != nil {
			t.Errorf("Parse(%q): %s", v, err)
			continue
		}
		if ft.String() != v {
			t.Errorf("Parse(%q): got %q", v, ft)
		}
	}

	if _, err := fieldtype.Parse("json"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestJSON(t *testing.T) {
	var got struct {
		Type fieldtype.FieldType `json:"type"`
	}

	if err := json.Unmarshal([]byte(`{"type":"richtext"}`), &got); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}

	if !got.Type.Equal(fieldtype.RichText) {
		t.Errorf("got %s, want richtext", got.Type)
	}

	if err := json.Unmarshal([]byte(`{"type":"blob"}`), &got); err == nil {
		t.Error("expected error for unknown type")
	}
}
