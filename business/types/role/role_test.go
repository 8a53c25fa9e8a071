package role_test

import (
	"testing"

	"github.com/jcpaschoal/headless-cms/business/types/role"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    role.Role
		wantErr bool
	}{
		{in: "admin", want: role.Admin},
		{in: "EDITOR", want: role.Editor},
		{in: " viewer ", want: role.Viewer},
		{in: "owner", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := role.Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tt.in)
			}
			continue
		}

		if err != nil {
			t.Errorf("Parse(%q): %s", tt.in, err)
			continue
		}

		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNames(t *testing.T) {
	if got := role.Names(role.Admin, role.Editor); got != "admin, editor" {
		t.Errorf("got %q", got)
	}
}

func TestAll(t *testing.T) {
	all := role.All()
	if got := role.Names(all...); got != "admin, editor, viewer" {
		t.Errorf("got %q", got)
	}

	all[0] = role.Viewer
	if !role.All()[0].Equal(role.Admin) {
		t.Error("All must return a copy")
	}
}
