package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/clipedit/clipedit/color"
	"github.com/clipedit/clipedit/icon"
	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/server"
	"github.com/clipedit/clipedit/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "Address to listen on")
	lo.Must0(viper.BindPFlag(key.ServerAddress, serveCmd.Flags().Lookup("address")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host editor sessions for remote clients over websockets",
	Long: `Start an HTTP server where every websocket connection to /ws owns one editor session.

Clients send the same steps as inline mode and receive a snapshot after each change.
When server.redis_url is set, snapshots are also published to server.redis_channel.`,
	Run: func(cmd *cobra.Command, args []string) {
		srv, err := server.NewFromConfig()
		handleErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := viper.GetString(key.ServerAddress)
		cmd.Printf("%s listening on %s\n", icon.Get(icon.Link), style.Fg(color.Yellow)(addr))

		handleErr(srv.ListenAndServe(ctx, addr))
	},
}
