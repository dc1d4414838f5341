package certs

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, cert tls.Certificate) *x509.Certificate {
	t.Helper()
	require.Len(t, cert.Certificate, 1)
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	return leaf
}

func TestFileManager_GetOrCreateCertificate(t *testing.T) {
	tests := []struct {
		setup   func(t *testing.T, dir string)
		check   func(t *testing.T, dir string, leaf *x509.Certificate)
		name    string
		wantErr bool
	}{
		{
			name: "creates a certificate when none exists",
			check: func(t *testing.T, _ string, leaf *x509.Certificate) {
				assert.Equal(t, "Credit Risk Console", leaf.Subject.Organization[0])
				assert.Contains(t, leaf.DNSNames, "localhost")
				assert.NoError(t, leaf.VerifyHostname("127.0.0.1"))
				assert.True(t, leaf.NotAfter.After(time.Now().Add(Validity-time.Hour)))
			},
		},
		{
			name: "reuses a valid certificate",
			setup: func(t *testing.T, dir string) {
				_, err := NewFileManager(dir).GetOrCreateCertificate()
				require.NoError(t, err)
			},
			check: func(t *testing.T, dir string, leaf *x509.Certificate) {
				stored, err := tls.LoadX509KeyPair(filepath.Join(dir, "stub.crt"), filepath.Join(dir, "stub.key"))
				require.NoError(t, err)
				assert.Equal(t, parse(t, stored).SerialNumber, leaf.SerialNumber)
			},
		},
		{
			name: "regenerates unreadable files",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(dir, 0700))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "stub.crt"), []byte("junk"), 0600))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "stub.key"), []byte("junk"), 0600))
			},
			check: func(t *testing.T, _ string, leaf *x509.Certificate) {
				assert.Contains(t, leaf.DNSNames, "localhost")
			},
		},
		{
			name: "directory path is a file",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(filepath.Dir(dir), 0700))
				require.NoError(t, os.WriteFile(dir, []byte("file"), 0600))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "certs")
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			cert, err := NewFileManager(dir).GetOrCreateCertificate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, dir, parse(t, cert))
		})
	}
}

func TestFileManager_RegeneratesExpired(t *testing.T) {
	dir := t.TempDir()
	m := NewFileManager(dir)
	m.now = func() time.Time { return time.Now().Add(-2 * Validity) }
	old, err := m.GetOrCreateCertificate()
	require.NoError(t, err)

	fresh, err := NewFileManager(dir).GetOrCreateCertificate()
	require.NoError(t, err)
	assert.NotEqual(t, parse(t, old).SerialNumber, parse(t, fresh).SerialNumber)
	assert.True(t, parse(t, fresh).NotAfter.After(time.Now()))
}

func TestLoadPool_TrustsGeneratedCertificate(t *testing.T) {
	m := NewFileManager(t.TempDir())
	cert, err := m.GetOrCreateCertificate()
	require.NoError(t, err)

	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	srv.TLS = &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
	srv.StartTLS()
	defer srv.Close()

	pool, err := LoadPool(m.CertFile())
	require.NoError(t, err)

	client := &http.Client{Transport: &http.Transport{TLSClientConfig: &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}}}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestLoadPool_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadPool(filepath.Join(dir, "missing.pem"))
	assert.Error(t, err)

	junk := filepath.Join(dir, "junk.pem")
	require.NoError(t, os.WriteFile(junk, []byte("not pem"), 0600))
	_, err = LoadPool(junk)
	assert.ErrorIs(t, err, ErrNoCertificates)
}
