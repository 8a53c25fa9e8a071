package order_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/headless-cms/business/sdk/order"
)

func TestParse(t *testing.T) {
	mappings := map[string]string{
		"name":  "name",
		"email": "email",
	}
	def := order.NewBy("name", order.ASC)

	tests := []struct {
		name    string
		orderBy string
		want    order.By
		wantErr bool
	}{
		{name: "default", orderBy: "", want: def},
		{name: "field only", orderBy: "email", want: order.NewBy("email", order.ASC)},
		{name: "field and direction", orderBy: "email,desc", want: order.NewBy("email", order.DESC)},
		{name: "unknown field", orderBy: "password", wantErr: true},
		{name: "unknown direction", orderBy: "email,sideways", wantErr: true},
		{name: "too many parts", orderBy: "email,asc,x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := order.Parse(mappings, tt.orderBy, def)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
