package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"i4.energy/across/btgw/hc05"
)

type fakeModule struct {
	sent    []string
	name    string
	pin     string
	rate    uint32
	resets  int
	version string
	err     error
	pending bool
}

func (f *fakeModule) SendData(data string) error {
	f.sent = append(f.sent, data)
	return f.err
}

func (f *fakeModule) Version(context.Context) (string, error) {
	return f.version, f.err
}

func (f *fakeModule) SetName(_ context.Context, name string) error {
	f.name = name
	return f.err
}

func (f *fakeModule) SetPIN(_ context.Context, pin string) error {
	f.pin = pin
	return f.err
}

func (f *fakeModule) SetBaudRate(_ context.Context, rate uint32) error {
	f.rate = rate
	return f.err
}

func (f *fakeModule) ResetModule(context.Context) error {
	f.resets++
	return f.err
}

func (f *fakeModule) Mode() hc05.Mode     { return hc05.ModeData }
func (f *fakeModule) LineAvailable() bool { return f.pending }

func newTestServer(m *fakeModule) *Server {
	return &Server{
		Logger: slog.New(slog.DiscardHandler),
		Module: m,
		LED:    NewLogIndicator(slog.New(slog.DiscardHandler)),
	}
}

func serve(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestServerHandlers(t *testing.T) {
	t.Run("POST /send", func(t *testing.T) {
		m := &fakeModule{}
		w := serve(newTestServer(m), http.MethodPost, "/send", `{"data":"hello\r\n"}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, []string{"hello\r\n"}, m.sent)
	})

	t.Run("POST /send requires data", func(t *testing.T) {
		m := &fakeModule{}
		w := serve(newTestServer(m), http.MethodPost, "/send", `{}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Empty(t, m.sent)
	})

	t.Run("POST /send rejects malformed JSON", func(t *testing.T) {
		w := serve(newTestServer(&fakeModule{}), http.MethodPost, "/send", `{`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("GET /version", func(t *testing.T) {
		w := serve(newTestServer(&fakeModule{version: "2.0-20100601"}), http.MethodGet, "/version", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"version":"2.0-20100601"}`, w.Body.String())
	})

	t.Run("PUT /name", func(t *testing.T) {
		m := &fakeModule{}
		w := serve(newTestServer(m), http.MethodPut, "/name", `{"name":"STM32_HC05"}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "STM32_HC05", m.name)
	})

	t.Run("PUT /pin", func(t *testing.T) {
		m := &fakeModule{}
		w := serve(newTestServer(m), http.MethodPut, "/pin", `{"pin":"1234"}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "1234", m.pin)
	})

	t.Run("PUT /baud", func(t *testing.T) {
		m := &fakeModule{}
		w := serve(newTestServer(m), http.MethodPut, "/baud", `{"rate":115200}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, uint32(115200), m.rate)
	})

	t.Run("POST /reset", func(t *testing.T) {
		m := &fakeModule{}
		w := serve(newTestServer(m), http.MethodPost, "/reset", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 1, m.resets)
	})

	t.Run("GET /status", func(t *testing.T) {
		s := newTestServer(&fakeModule{pending: true})
		require.NoError(t, s.LED.On())

		w := serve(s, http.MethodGet, "/status", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"mode":"data","line_pending":true,"led":true}`, w.Body.String())
	})

	t.Run("Wrong method", func(t *testing.T) {
		w := serve(newTestServer(&fakeModule{}), http.MethodGet, "/send", "")

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestServerErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: fmt.Errorf("%w: empty name", hc05.ErrInvalidArgument), status: http.StatusBadRequest},
		{err: fmt.Errorf("%w: no response", hc05.ErrTimeout), status: http.StatusGatewayTimeout},
		{err: context.DeadlineExceeded, status: http.StatusGatewayTimeout},
		{err: &hc05.CommandError{Command: "AT+NAME=x", Code: "1D"}, status: http.StatusInternalServerError},
		{err: errors.Join(hc05.ErrTransport, errors.New("uart")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := serve(newTestServer(&fakeModule{err: tt.err}), http.MethodPut, "/name", `{"name":"x"}`)

			require.Equal(t, tt.status, w.Code)

			var resp struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			require.Equal(t, tt.err.Error(), resp.Message)
		})
	}
}
