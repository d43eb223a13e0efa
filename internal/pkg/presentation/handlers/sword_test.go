package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/api-repository/internal/pkg/application/deposit"
	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/sword"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestDepositErrorsAreMappedToStatusAndErrorDocument(t *testing.T) {
	is := is.New(t)

	tests := map[string]struct {
		err    error
		status int
		code   string
	}{
		"checksum": {
			err:    &deposit.Error{Code: base.ErrorChecksumMismatch, Status: http.StatusPreconditionFailed, Message: "checksum mismatch"},
			status: http.StatusPreconditionFailed,
			code:   base.ErrorChecksumMismatch,
		},
		"too large": {
			err:    &deposit.Error{Code: base.MaxUploadSizeExceeded, Status: http.StatusRequestEntityTooLarge, Message: "too large"},
			status: http.StatusRequestEntityTooLarge,
			code:   base.MaxUploadSizeExceeded,
		},
		"content": {
			err:    &deposit.Error{Code: base.ErrorContent, Status: http.StatusUnsupportedMediaType, Message: "unacceptable"},
			status: http.StatusUnsupportedMediaType,
			code:   base.ErrorContent,
		},
		"store failure": {
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
			code:   base.ErrorBadRequest,
		},
	}

	for name, tc := range tests {
		svc := authenticatingDepositService()
		svc.DepositFunc = func(ctx context.Context, sc *deposit.Context, req deposit.Request) (*sword.DepositResponse, error) {
			return nil, tc.err
		}

		resp, body := postDeposit(is, svc, "/sword/deposit/123456789/2", true)

		is.Equal(resp.StatusCode, tc.status)
		is.Equal(resp.Header.Get(base.HeaderErrorCode), tc.code)

		doc := &sword.DepositResponse{}
		info, err := doc.Unmarshall([]byte(body), base.Properties{})
		is.NoErr(err)
		is.True(doc.IsError())
		is.Equal(doc.Error.ErrorURI, tc.code)
		is.Equal(doc.Error.Generator.URI, "https://repo.example.org")
		if info.Type() >= base.Error {
			t.Fatalf("%s: error document does not validate:\n%s", name, body)
		}
	}
}

func TestDepositHandlerPassesRequestToService(t *testing.T) {
	is := is.New(t)

	svc := authenticatingDepositService()
	svc.DepositFunc = func(ctx context.Context, sc *deposit.Context, req deposit.Request) (*sword.DepositResponse, error) {
		return nil, &deposit.Error{Code: base.ErrorBadRequest, Status: http.StatusNotFound, Message: "no such collection"}
	}

	resp, _ := postDeposit(is, svc, "/sword/deposit/123456789/2", true)
	is.Equal(resp.StatusCode, http.StatusNotFound)

	is.Equal(len(svc.AuthenticateCalls()), 1)
	is.Equal(svc.AuthenticateCalls()[0].Username, "submitter@example.org")
	is.Equal(svc.AuthenticateCalls()[0].OnBehalfOf, "other@example.org")

	is.Equal(len(svc.DepositCalls()), 1)
	req := svc.DepositCalls()[0].Req
	is.Equal(req.Collection, "123456789/2")
	is.Equal(req.Filename, "paper.pdf")
	is.Equal(req.ContentType, "application/pdf")
	is.True(req.NoOp)
}

func TestDepositWithoutCredentialsIsChallenged(t *testing.T) {
	is := is.New(t)

	svc := authenticatingDepositService()

	resp, _ := postDeposit(is, svc, "/sword/deposit/123456789/2", false)
	is.Equal(resp.StatusCode, http.StatusUnauthorized)
	is.Equal(resp.Header.Get("WWW-Authenticate"), `Basic realm="SWORD"`)
	is.Equal(len(svc.AuthenticateCalls()), 0)
	is.Equal(len(svc.DepositCalls()), 0)
}

func authenticatingDepositService() *deposit.DepositServiceMock {
	return &deposit.DepositServiceMock{
		AuthenticateFunc: func(ctx context.Context, username, password, onBehalfOf string) (*deposit.Context, error) {
			return &deposit.Context{Authenticated: &domain.EPerson{DSO: domain.NewDSO(), Email: username}}, nil
		},
	}
}

func postDeposit(is *is.I, svc deposit.DepositService, path string, withCredentials bool) (*http.Response, string) {
	r := chi.NewRouter()
	r.Post("/sword/deposit/*", NewDepositHandler(zerolog.Nop(), "https://repo.example.org/", svc))

	ts := httptest.NewServer(r)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader("%PDF-1.4"))
	is.NoErr(err)

	req.Header.Set(base.HeaderContentType, "application/pdf")
	req.Header.Set(base.HeaderContentDisposition, `filename="paper.pdf"`)
	req.Header.Set(base.HeaderOnBehalfOf, "other@example.org")
	req.Header.Set(base.HeaderNoOp, "true")
	if withCredentials {
		req.SetBasicAuth("submitter@example.org", "secret")
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	is.NoErr(err)

	return resp, string(body)
}
