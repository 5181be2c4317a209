package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSender_Send(t *testing.T) {
	var got Notification
	var path, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewHTTPSender(srv.URL+"/", "/notificar-venta", time.Second)
	err := s.Send(context.Background(), Notification{OrderID: "o1", ClientID: "C1", DownloadLink: "http://api/orders/o1"})

	require.NoError(t, err)
	assert.Equal(t, "/notificar-venta", path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, Notification{OrderID: "o1", ClientID: "C1", DownloadLink: "http://api/orders/o1"}, got)
}

func TestHTTPSender_WireFormat(t *testing.T) {
	raw, err := json.Marshal(Notification{OrderID: "o1", ClientID: "C1", DownloadLink: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"notaVentaId":"o1","clienteId":"C1","downloadLink":"x"}`, string(raw))
}

func TestHTTPSender_Failures(t *testing.T) {
	t.Run("non success status with error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"smtp caido"}`))
		}))
		defer srv.Close()

		err := NewHTTPSender(srv.URL, "notificar-venta", time.Second).Send(context.Background(), Notification{OrderID: "o1"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDeliveryFailed))
		assert.Contains(t, err.Error(), "502")
		assert.Contains(t, err.Error(), "smtp caido")
	})

	t.Run("non success status without body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := NewHTTPSender(srv.URL, "/notificar-venta", time.Second).Send(context.Background(), Notification{OrderID: "o1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Service Unavailable")
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		err := NewHTTPSender(url, "/notificar-venta", time.Second).Send(context.Background(), Notification{OrderID: "o1"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDeliveryFailed))
	})
}
