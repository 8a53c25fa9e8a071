package checkapp_test

import (
	"net/http"
	"testing"

	"github.com/jcpaschoal/headless-cms/app/sdk/apitest"
)

func Test_Checks(t *testing.T) {
	at := apitest.New(t, "Test_Checks")

	table := []apitest.Table{
		{
			Name:       "health",
			URL:        "/api/health",
			Method:     http.MethodGet,
			StatusCode: http.StatusOK,
			ExpResp:    apitest.Response{Success: true, Message: "CMS API is running"},
		},
		{
			Name:       "readiness-without-db",
			URL:        "/api/readiness",
			Method:     http.MethodGet,
			StatusCode: http.StatusOK,
			ExpResp:    apitest.Response{Success: true},
		},
	}

	at.Run(t, table, "checks")
}
