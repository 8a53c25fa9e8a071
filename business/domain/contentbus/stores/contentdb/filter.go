package contentdb

import (
	"bytes"
	"strings"

	"github.com/jcpaschoal/headless-cms/business/domain/contentbus"
)

func applyFilter(filter contentbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	wc := []string{
		"tenant_id = :tenant_id",
		"content_type_slug = :content_type_slug",
	}

	data["tenant_id"] = filter.TenantID.String()
	data["content_type_slug"] = filter.ContentTypeSlug.String()

	if filter.IsDraft != nil {
		data["is_draft"] = *filter.IsDraft
		wc = append(wc, "is_draft = :is_draft")
	}

	buf.WriteString(" WHERE ")
	buf.WriteString(strings.Join(wc, " AND "))
}
