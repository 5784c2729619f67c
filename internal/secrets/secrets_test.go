package secrets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarguelles2/nTOU/internal/errs"
)

type fakeGetter struct {
	value *string
	err   error

	gotName, gotVersion string
}

func (f *fakeGetter) GetSecret(_ context.Context, name, version string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	f.gotName, f.gotVersion = name, version
	if f.err != nil {
		return azsecrets.GetSecretResponse{}, f.err
	}
	return azsecrets.GetSecretResponse{Secret: azsecrets.Secret{Value: f.value}}, nil
}

func notFound() error {
	req := httptest.NewRequest(http.MethodGet, "https://kv.example.net/secrets/db-info", nil)
	return &azcore.ResponseError{
		StatusCode:  http.StatusNotFound,
		ErrorCode:   "SecretNotFound",
		RawResponse: &http.Response{StatusCode: http.StatusNotFound, Status: "404 Not Found", Request: req},
	}
}

func ptr(s string) *string { return &s }

func TestFetchConnectionInfo(t *testing.T) {
	t.Parallel()

	cfg := Config{VaultURL: "https://kv.example.net/", SecretName: "db-info", SecretVersion: "v2"}

	tests := []struct {
		name    string
		getter  *fakeGetter
		want    ConnectionInfo
		wantErr func(t *testing.T, err error)
	}{
		{
			name:   "numeric port",
			getter: &fakeGetter{value: ptr(`{"server":"sql.example.net","port":1433,"database":"tidq"}`)},
			want:   ConnectionInfo{Server: "sql.example.net", Port: "1433", Database: "tidq"},
		},
		{
			name:   "string port and extra fields",
			getter: &fakeGetter{value: ptr(`{"server":"s","port":"1444","database":"d","user":"ignored"}`)},
			want:   ConnectionInfo{Server: "s", Port: "1444", Database: "d"},
		},
		{
			name:   "retrieval failure",
			getter: &fakeGetter{err: notFound()},
			wantErr: func(t *testing.T, err error) {
				var nf *errs.SecretNotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, "db-info", nf.Name)
				assert.True(t, IsNotFound(err))
			},
		},
		{
			name:   "transport failure",
			getter: &fakeGetter{err: errors.New("dial tcp: timeout")},
			wantErr: func(t *testing.T, err error) {
				var nf *errs.SecretNotFoundError
				require.ErrorAs(t, err, &nf)
				assert.False(t, IsNotFound(err))
			},
		},
		{
			name:   "nil value",
			getter: &fakeGetter{},
			wantErr: func(t *testing.T, err error) {
				var pe *errs.ParseError
				require.ErrorAs(t, err, &pe)
			},
		},
		{
			name:   "not json",
			getter: &fakeGetter{value: ptr("server=s;database=d")},
			wantErr: func(t *testing.T, err error) {
				var pe *errs.ParseError
				require.ErrorAs(t, err, &pe)
			},
		},
		{
			name:   "missing database",
			getter: &fakeGetter{value: ptr(`{"server":"s","port":1433}`)},
			wantErr: func(t *testing.T, err error) {
				var pe *errs.ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, "database", pe.Column)
			},
		},
		{
			name:   "port taken as is",
			getter: &fakeGetter{value: ptr(`{"server":"s","port":"abc","database":"d"}`)},
			want:   ConnectionInfo{Server: "s", Port: "abc", Database: "d"},
		},
		{
			name:   "non string database literal",
			getter: &fakeGetter{value: ptr(`{"server":"s","port":70000,"database":42}`)},
			want:   ConnectionInfo{Server: "s", Port: "70000", Database: "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FetchConnectionInfo(context.Background(), tt.getter, cfg)
			assert.Equal(t, "db-info", tt.getter.gotName)
			assert.Equal(t, "v2", tt.getter.gotVersion)
			if tt.wantErr != nil {
				require.Error(t, err)
				tt.wantErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnectionInfoDSN(t *testing.T) {
	t.Parallel()

	dsn, err := ConnectionInfo{Server: "sql.example.net", Port: "1433", Database: "tidq db"}.DSN()
	require.NoError(t, err)
	assert.Equal(t, "sqlserver://sql.example.net:1433?database=tidq+db", dsn)

	for _, port := range []string{"notaport", "70000", ""} {
		_, err = ConnectionInfo{Server: "s", Port: port, Database: "d"}.DSN()
		var pe *errs.ParseError
		require.ErrorAs(t, err, &pe, "port %q", port)
		assert.Equal(t, "port", pe.Column)
	}
}
