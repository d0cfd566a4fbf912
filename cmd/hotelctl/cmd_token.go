package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gestion-hotel/pkg/config"
	"github.com/jhoicas/gestion-hotel/pkg/jwt"
)

var (
	tokenSubject string
	tokenRole    string
	tokenExp     int
)

// hotelctl token --subject recepcion-1 --role recepcionista
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un JWT para el personal (admin | recepcionista)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cfg.JWT.Enabled() {
			return fmt.Errorf("JWT_SECRET no está configurado")
		}
		exp := tokenExp
		if exp <= 0 {
			exp = cfg.JWT.Expiration
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, tokenSubject, tokenRole, cfg.JWT.Issuer, exp)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "identificador de quien usará el token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", jwt.RoleReceptionist, "admin | recepcionista")
	tokenCmd.Flags().IntVar(&tokenExp, "exp", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("subject")
}
