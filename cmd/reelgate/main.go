package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/reelgate-inc/reelgate/docs"
	"github.com/reelgate-inc/reelgate/internal/interfaces/cli/migrate"
	"github.com/reelgate-inc/reelgate/internal/interfaces/cli/server"
)

//	@title						Reelgate API
//	@version					1.0
//	@description				Paywalled video storefront: tier purchases, payment settlement and signed playback URLs.
//	@BasePath					/
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "reelgate",
		Short: "Reelgate - paywalled video storefront",
		Long:  `Reelgate sells rental, regular and box-set access to a series and serves signed playback URLs to entitled viewers.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
