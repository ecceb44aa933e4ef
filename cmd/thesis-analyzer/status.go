package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/thesis-analyzer/internal/container"
	"github.com/pdiddy/thesis-analyzer/internal/grobid"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the GROBID service and print startup hints",
	Long: `Status checks whether the configured GROBID server answers its health
endpoint. When the server is down, status inspects the local container
runtime and prints the commands needed to start one, optionally starting
it with --start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL := stringSetting(cmd, "grobid-url", "grobid.server_url")
		start, _ := cmd.Flags().GetBool("start")

		client := grobid.NewClient(grobidConfig(serverURL))
		if err := client.IsAlive(cmd.Context()); err == nil {
			fmt.Printf("GROBID server is up at %s\n", client.ServerURL())
			return nil
		}

		fmt.Fprintf(os.Stderr, "GROBID server is not responding at %s\n", client.ServerURL())

		rt, err := container.DetectRuntime()
		if err != nil {
			fmt.Fprintln(os.Stderr, "no container runtime found; install docker or podman, then run:")
			fmt.Fprintf(os.Stderr, "  docker run --rm -d -p %d:%d %s\n",
				container.GrobidPort, container.GrobidPort, container.GrobidImage)
			return fmt.Errorf("GROBID unavailable")
		}

		if err := rt.ImageExists(container.GrobidImage); err != nil {
			fmt.Fprintf(os.Stderr, "image missing; run:\n  %s pull %s\n", rt.Name(), container.GrobidImage)
			return fmt.Errorf("GROBID unavailable")
		}

		if !start {
			fmt.Fprintf(os.Stderr, "start it with:\n  %s run --rm -d -p %d:%d %s\nor re-run with --start\n",
				rt.Name(), container.GrobidPort, container.GrobidPort, container.GrobidImage)
			return fmt.Errorf("GROBID unavailable")
		}

		id, err := rt.StartDetached(container.GrobidImage, container.GrobidPort)
		if err != nil {
			return err
		}
		fmt.Printf("started GROBID container %s; the service needs a few seconds to come up\n", id)
		return nil
	},
}

func init() {
	statusCmd.Flags().String("grobid-url", "http://localhost:8070", "GROBID server base URL")
	statusCmd.Flags().Bool("start", false, "start a GROBID container when the service is down")

	rootCmd.AddCommand(statusCmd)
}
