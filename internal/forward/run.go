package forward

import (
	"context"
	"log/slog"

	"github.com/devilcove/piafwd"
	"github.com/kr/pretty"
)

const reminder = "Make sure to allow this port in your firewall and configure your applications to use it."

// Run executes the port forward workflow: confirm the vpn is up, load
// and prepare credentials, request a port, classify the answer. The
// returned string is the text to print on stdout.
func Run(ctx context.Context, config Configuration, credentialsPath string) (string, error) {
	if !piafwd.Connected(config.Interface) {
		return "", piafwd.Fail(piafwd.InterfaceNotConnected, nil,
			"VPN interface %s is not connected, please connect it first\n"+
				"be sure --interface or PIAFWD_INTERFACE is set correctly if your VPN is actually connected",
			config.Interface)
	}
	slog.Debug("tunnel is connected", "interface", config.Interface)
	credentials, err := loadFrom(config, credentialsPath)
	if err != nil {
		return "", err
	}
	document, err := RequestPort(ctx, credentials, config.Endpoint, config.HTTPTimeout())
	if err != nil {
		return "", err
	}
	slog.Info("response received")
	slog.Debug("api response document", "document", pretty.Sprint(document))
	message, err := Classify(document)
	if err != nil {
		return "", err
	}
	return message + "\n\n" + reminder, nil
}

func loadFrom(config Configuration, credentialsPath string) (Credentials, error) {
	if config.Keyring {
		return LoadKeyringCredentials(config.Interface)
	}
	return LoadCredentials(credentialsPath, config.Interface)
}
