// Package secrets looks up the database connection descriptor stored in an
// Azure Key Vault secret.
//
// The secret value is a JSON object with at least "server", "port" and
// "database". Nothing here opens a database connection.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/aarguelles2/nTOU/internal/errs"
)

// Config names the secret to read.
type Config struct {
	VaultURL      string
	SecretName    string
	SecretVersion string // empty selects the latest version
}

// SecretGetter is the subset of *azsecrets.Client used here.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// NewAzureClient builds a Key Vault client authenticated with the default
// Azure credential chain (environment, workload identity, managed identity,
// Azure CLI, ...).
func NewAzureClient(cfg Config) (*azsecrets.Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}
	client, err := azsecrets.NewClient(cfg.VaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("key vault client %s: %w", cfg.VaultURL, err)
	}
	return client, nil
}

// ConnectionInfo is the decoded secret payload.
type ConnectionInfo struct {
	Server   string
	Port     string
	Database string
}

// FetchConnectionInfo reads cfg.SecretName through g and decodes it.
//
// Any retrieval failure, including a 404 from the vault, is reported as
// *errs.SecretNotFoundError. A missing value, invalid JSON or a missing field
// is reported as *errs.ParseError.
func FetchConnectionInfo(ctx context.Context, g SecretGetter, cfg Config) (ConnectionInfo, error) {
	resp, err := g.GetSecret(ctx, cfg.SecretName, cfg.SecretVersion, nil)
	if err != nil {
		return ConnectionInfo{}, &errs.SecretNotFoundError{Name: cfg.SecretName, Err: err}
	}
	if resp.Value == nil {
		return ConnectionInfo{}, &errs.ParseError{Column: cfg.SecretName, Err: errors.New("secret has no value")}
	}
	return Decode(*resp.Value)
}

// Decode parses a connection descriptor. Field values are taken as they are:
// a JSON string yields its text, any other JSON value its literal ("1433").
// Only an absent field is an error.
func Decode(raw string) (ConnectionInfo, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return ConnectionInfo{}, &errs.ParseError{Err: fmt.Errorf("decode connection info: %w", err)}
	}

	var info ConnectionInfo
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"server", &info.Server},
		{"port", &info.Port},
		{"database", &info.Database},
	} {
		v, ok := fields[f.name]
		if !ok {
			return ConnectionInfo{}, &errs.ParseError{Column: f.name, Err: errors.New("field missing")}
		}
		*f.dst = fieldText(v)
	}
	return info, nil
}

func fieldText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// IsNotFound reports whether err came from the vault answering 404.
func IsNotFound(err error) bool {
	var re *azcore.ResponseError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

// DSN renders a sqlserver:// URL for c without credentials and checks that
// the driver can parse it.
func (c ConnectionInfo) DSN() (string, error) {
	u := url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(strings.TrimSpace(c.Server), strings.TrimSpace(c.Port)),
		RawQuery: url.Values{"database": {c.Database}}.Encode(),
	}
	if _, err := strconv.ParseUint(strings.TrimSpace(c.Port), 10, 16); err != nil {
		return "", &errs.ParseError{Column: "port", Value: c.Port, Err: errors.New("not a port number")}
	}
	dsn := u.String()
	if _, err := msdsn.Parse(dsn); err != nil {
		return "", fmt.Errorf("invalid connection info: %w", err)
	}
	return dsn, nil
}
