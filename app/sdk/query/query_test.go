package query_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/headless-cms/app/sdk/query"
	"github.com/jcpaschoal/headless-cms/business/sdk/page"
)

func Test_NewResult(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		total int
		page  string
		rows  string
		want  query.Result[string]
	}{
		{
			name:  "empty",
			total: 0,
			page:  "1",
			rows:  "10",
			want:  query.Result[string]{Items: []string{}, Total: 0, Page: 1, Limit: 10, Pages: 0},
		},
		{
			name:  "partial-last-page",
			items: []string{"a", "b"},
			total: 12,
			page:  "2",
			rows:  "10",
			want:  query.Result[string]{Items: []string{"a", "b"}, Total: 12, Page: 2, Limit: 10, Pages: 2},
		},
		{
			name:  "exact",
			items: []string{"a"},
			total: 3,
			page:  "3",
			rows:  "1",
			want:  query.Result[string]{Items: []string{"a"}, Total: 3, Page: 3, Limit: 1, Pages: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg := page.MustParse(tt.page, tt.rows)

			got := query.NewResult(tt.items, tt.total, pg)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
