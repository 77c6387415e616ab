package app

import (
	"strings"

	"github.com/thenoetrevino/deskboard/internal/board"
	"github.com/thenoetrevino/deskboard/internal/config"
	"github.com/thenoetrevino/deskboard/internal/gateway"
)

// NewGateway returns a client for the server named by cfg: Client.Server
// when it is an http(s) URL, otherwise the unix socket.
func NewGateway(cfg *config.Config, opts ...Option) *gateway.Client {
	c := newAppConfig(opts)
	gopts := []gateway.Option{
		gateway.WithTimeout(cfg.Client.Timeout),
		gateway.WithRetry(cfg.Client.FetchRetries, cfg.Client.RetryBaseDelay),
		gateway.WithLogger(c.logger.With("component", "gateway")),
	}

	server := cfg.Client.Server
	if strings.HasPrefix(server, "http://") || strings.HasPrefix(server, "https://") {
		return gateway.NewHTTPClient(server, gopts...)
	}
	if server == "" {
		server = cfg.Server.Socket
	}
	return gateway.NewUnixClient(server, gopts...)
}

// NewEngine returns a board engine talking to the configured server
func NewEngine(cfg *config.Config, opts ...Option) *board.Engine {
	c := newAppConfig(opts)
	eopts := []board.Option{board.WithLogger(c.logger.With("component", "board"))}
	if c.hub != nil {
		eopts = append(eopts, board.WithHub(c.hub))
	}
	return board.NewEngine(NewGateway(cfg, opts...), eopts...)
}
