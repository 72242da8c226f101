package forward

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"

	"github.com/devilcove/piafwd"
	"github.com/zalando/go-keyring"
)

const (
	// KeyringService and KeyringItem locate the document saved by the
	// store command in the system keyring.
	KeyringService = "piafwd"
	KeyringItem    = "credentials"

	localIPKey = "local_ip"
)

// RequiredKeys are the account fields the api needs in every request.
var RequiredKeys = []string{"user", "pass", "client_id"}

// Credentials is the flat key/value document posted to the api. Loading
// attaches the tunnel address under local_ip; every entry is sent to the
// api verbatim.
type Credentials map[string]string

// LoadCredentials reads the credentials document at path and prepares it
// for the api: parse, attach the tunnel address, check required keys.
func LoadCredentials(path, iface string) (Credentials, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, piafwd.Fail(piafwd.CredentialsUnreadable, err, "failed to read credentials file %s", path)
	}
	slog.Debug("read credentials file", "path", path)
	return prepare(contents, path, iface)
}

// LoadKeyringCredentials fetches the document saved by the store command
// and prepares it the same way as a file.
func LoadKeyringCredentials(iface string) (Credentials, error) {
	contents, err := keyring.Get(KeyringService, KeyringItem)
	if err != nil {
		return nil, piafwd.Fail(piafwd.CredentialsUnreadable, err, "failed to read credentials from system keyring")
	}
	slog.Debug("read credentials from system keyring")
	return prepare([]byte(contents), "keyring", iface)
}

// ParseCredentials decodes and checks a credentials document without
// touching the tunnel. The store command vets files with it before
// saving them.
func ParseCredentials(contents []byte, source string) (Credentials, error) {
	credentials, err := parse(contents, source)
	if err != nil {
		return nil, err
	}
	if err := credentials.Validate(source); err != nil {
		return nil, err
	}
	return credentials, nil
}

// StoreCredentials saves a credentials document to the system keyring.
func StoreCredentials(contents []byte) error {
	return keyring.Set(KeyringService, KeyringItem, string(contents))
}

// ClearCredentials removes saved credentials from the system keyring.
func ClearCredentials() error {
	return keyring.Delete(KeyringService, KeyringItem)
}

// Validate checks that every required key is present. Values are not
// inspected; the api is the authority on whether they are good.
func (c Credentials) Validate(source string) error {
	missing := []string{}
	for _, key := range RequiredKeys {
		if _, ok := c[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return piafwd.Fail(piafwd.CredentialsIncomplete, nil,
			"credentials from %s are missing required keys %v", source, missing)
	}
	return nil
}

// Keys lists the document keys in sorted order so debug logs never
// contain values.
func (c Credentials) Keys() []string {
	keys := []string{}
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// prepare runs the load pipeline on raw document bytes. The tunnel
// address is attached before the required key check so that interface
// trouble is reported ahead of an incomplete document.
func prepare(contents []byte, source, iface string) (Credentials, error) {
	credentials, err := parse(contents, source)
	if err != nil {
		return nil, err
	}
	ip, err := piafwd.LocalAddress(iface)
	if err != nil {
		return nil, err
	}
	credentials[localIPKey] = ip
	slog.Debug("attached tunnel address", "interface", iface, "local_ip", ip)
	if err := credentials.Validate(source); err != nil {
		return nil, err
	}
	slog.Debug("credentials ready", "keys", credentials.Keys())
	return credentials, nil
}

func parse(contents []byte, source string) (Credentials, error) {
	var credentials Credentials
	if err := json.Unmarshal(contents, &credentials); err != nil {
		return nil, piafwd.Fail(piafwd.CredentialsMalformed, err, "failed to parse credentials from %s", source)
	}
	// json null leaves the map nil without an error
	if credentials == nil {
		return nil, piafwd.Fail(piafwd.CredentialsMalformed, nil, "credentials from %s are not a json object", source)
	}
	return credentials, nil
}
