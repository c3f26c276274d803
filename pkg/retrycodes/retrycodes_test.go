package retrycodes_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/httperr/pkg/retrycodes"
)

type codedErr string

func (e codedErr) Error() string { return "coded: " + string(e) }
func (e codedErr) Code() string  { return string(e) }

func TestCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), ""},
		{"dns timeout", &net.DNSError{Err: "i/o timeout", Name: "example.com", IsTimeout: true}, "ETIMEOUT"},
		{"dns not found", &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}, "ENOTFOUND"},
		{"dns temporary", &net.DNSError{Err: "try again", Name: "example.com", IsTemporary: true}, "EAI_AGAIN"},
		{"dns other", &net.DNSError{Err: "server misbehaving", Name: "example.com"}, "ESERVFAIL"},
		{
			"wrapped errno",
			&net.OpError{Op: "read", Net: "tcp", Err: os.NewSyscallError("read", syscall.ECONNRESET)},
			"ECONNRESET",
		},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), "ETIMEDOUT"},
		{"os deadline", os.ErrDeadlineExceeded, "ETIMEDOUT"},
		{"coded", fmt.Errorf("wrap: %w", codedErr("EAI_AGAIN")), "EAI_AGAIN"},
		{"unknown coded", codedErr("NoSuchKey"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, retrycodes.CodeOf(tt.err))
		})
	}
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	code, status, ok := retrycodes.StatusOf(&net.DNSError{Err: "i/o timeout", IsTimeout: true})
	assert.True(t, ok)
	assert.Equal(t, "ETIMEOUT", code)
	assert.Equal(t, http.StatusRequestTimeout, status)

	_, status, ok = retrycodes.StatusOf(&net.DNSError{Err: "no such host", IsNotFound: true})
	assert.True(t, ok)
	assert.Equal(t, http.StatusMisdirectedRequest, status)

	_, _, ok = retrycodes.StatusOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestCodesIsACopy(t *testing.T) {
	t.Parallel()

	codes := retrycodes.Codes()
	codes["ECONNRESET"] = 999

	status, ok := retrycodes.Lookup("ECONNRESET")
	assert.True(t, ok)
	assert.Equal(t, http.StatusRequestTimeout, status)
}
