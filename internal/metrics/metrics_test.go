package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRouteAndStatus(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(statusFromError(err))
		},
	})
	app.Use(Middleware())
	app.Get("/things/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "missing" {
			return errx.New("nope", errx.TypeNotFound)
		}
		return c.SendString("ok")
	})
	app.Get("/metrics", FiberHandler())

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/things/:id", "404"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/things/:id", "404"))
	assert.Equal(t, before+1, after)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "internhub_http_requests_total")
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(transitions.WithLabelValues("accepted"))
	RecordTransition("accepted")
	assert.Equal(t, before+1, testutil.ToFloat64(transitions.WithLabelValues("accepted")))

	beforeDropped := testutil.ToFloat64(outboxRedelivered.WithLabelValues("dropped"))
	RecordOutboxRedelivery("dropped")
	assert.Equal(t, beforeDropped+1, testutil.ToFloat64(outboxRedelivered.WithLabelValues("dropped")))
}
