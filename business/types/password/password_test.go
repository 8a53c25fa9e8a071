package password_test

import (
	"testing"

	"github.com/jcpaschoal/headless-cms/business/types/password"
)

func TestParse(t *testing.T) {
	if _, err := password.Parse("12345"); err == nil {
		t.Error("expected error for short password")
	}

	p, err := password.Parse("123456")
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	text, _ := p.MarshalText()
	if string(text) == "123456" {
		t.Error("password leaked through MarshalText")
	}
}
