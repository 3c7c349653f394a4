package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfind/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pathfind SSH server",
	Long: `Start an SSH server that lets users connect and watch searches.

Each SSH connection gets its own session with a map picker menu over the
maps directory. Runs are recorded in the shared history database.

Host key handling:
  - The key file from --host-key (or server.host_key in the config) is
    used, and generated there if it does not exist

Examples:
  pathfind serve                           # Listen on the configured address
  pathfind serve --ssh :2222               # Listen on port 2222
  pathfind serve --maps ./maps             # Serve maps from ./maps
  pathfind serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle time before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	settings := loadSettings()
	if flagSSHAddr != "" {
		settings.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		settings.Server.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		settings.Server.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(settings, newLogger(os.Stderr))
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting pathfind SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
