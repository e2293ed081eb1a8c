package legacy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"portal_pagos/internal/domain/entities"
)

func samplePayment() entities.LegacyPayment {
	return entities.LegacyPayment{
		IdEmpresa:     "764430824",
		IdCliente:     100,
		RutCliente:    "123456785",
		Mail:          "cliente@example.com",
		Recaudador:    "Flow",
		Canal:         "Webpay <tarjeta>",
		FechaPago:     "15-03-2024",
		FechaContable: "18-03-2024",
		Mes:           1,
		Ano:           2024,
		Monto:         5000,
		MontoFlow:     4750,
	}
}

func TestPreviewEnvelope(t *testing.T) {
	env := PreviewEnvelope(samplePayment())
	for _, want := range []string{
		`xmlns:ws="http://ws.homenet.cl"`,
		`<ws:IngresarPago soapenv:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">`,
		`<IdEmpresa xsi:type="xsd:string">764430824</IdEmpresa>`,
		`<IdCliente xsi:type="xsd:int">100</IdCliente>`,
		`<Canal xsi:type="xsd:string">Webpay &lt;tarjeta&gt;</Canal>`,
		`<MontoFlow xsi:type="xsd:int">4750</MontoFlow>`,
	} {
		if !strings.Contains(env, want) {
			t.Fatalf("envelope missing %q:\n%s", want, env)
		}
	}

	p := samplePayment()
	p.Mail = ""
	if strings.Contains(PreviewEnvelope(p), "<Mail") {
		t.Fatalf("empty string fields must be left out")
	}
}

func TestIngresarPagoClient_Dispatch(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		var gotAction, gotPath, gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAction = r.Header.Get("SOAPAction")
			gotPath = r.URL.RequestURI()
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
			_, _ = w.Write([]byte("<return>OK</return>"))
		}))
		defer srv.Close()

		c := NewIngresarPagoClient(srv.URL+"/ws.php?wsdl", srv.Client())
		d, err := c.Dispatch(context.Background(), samplePayment())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPath != "/ws.php" || gotAction != `"`+srv.URL+`/ws.php/IngresarPago"` {
			t.Fatalf("unexpected request path=%s action=%s", gotPath, gotAction)
		}
		if !strings.Contains(gotBody, "<RutCliente") || d.Response != "<return>OK</return>" || d.HTTPStatus != 200 {
			t.Fatalf("unexpected dispatch: %+v", d)
		}
		if d.Endpoint != srv.URL+"/ws.php?wsdl" {
			t.Fatalf("dispatch must report the configured endpoint, got %s", d.Endpoint)
		}
	})

	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("fault"))
		}))
		defer srv.Close()

		d, err := NewIngresarPagoClient(srv.URL, srv.Client()).Dispatch(context.Background(), samplePayment())
		if !errors.Is(err, ErrHTTPStatus) || d.HTTPStatus != 500 || d.Envelope == "" {
			t.Fatalf("expected http status error, got %v %+v", err, d)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		if _, err := NewIngresarPagoClient(url, nil).Dispatch(context.Background(), samplePayment()); err == nil {
			t.Fatalf("expected transport error")
		}
	})

	t.Run("invalid record is not sent", func(t *testing.T) {
		p := samplePayment()
		p.Monto = 0
		if _, err := NewIngresarPagoClient("http://unused", nil).Dispatch(context.Background(), p); !errors.Is(err, ErrInvalidPayment) {
			t.Fatalf("expected ErrInvalidPayment, got %v", err)
		}
	})
}

func TestRouter(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	r := NewRouter(srv.URL+"/primary?wsdl", map[string]string{
		"76.531.608-1": srv.URL + "/villarrica?wsdl",
		"76734662k":    srv.URL + "/gorbea?wsdl",
		"77777777-7":   "",
	}, srv.Client())

	if got := r.EndpointFor("76734662-K"); got != srv.URL+"/gorbea?wsdl" {
		t.Fatalf("unexpected gorbea endpoint %s", got)
	}
	if got := r.EndpointFor("77777777-7"); got != srv.URL+"/primary?wsdl" {
		t.Fatalf("empty override must use the default, got %s", got)
	}

	for _, company := range []string{"765316081", "76734662K", "999"} {
		p := samplePayment()
		p.IdEmpresa = company
		if _, err := r.Dispatch(context.Background(), p); err != nil {
			t.Fatalf("dispatch %s: %v", company, err)
		}
	}
	if hits["/villarrica"] != 1 || hits["/gorbea"] != 1 || hits["/primary"] != 1 {
		t.Fatalf("unexpected routing: %v", hits)
	}
}
