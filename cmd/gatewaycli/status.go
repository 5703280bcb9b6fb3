// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luxfi/gateway/store/pebbledb"
)

// Config keys accepted in the status config file or environment.
const (
	configFileKey = "config-file"
	storePathKey  = "store-path"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the rotation state recorded in a gateway store",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := buildViper(cmd.Flags())
		if err != nil {
			return err
		}

		storePath := v.GetString(storePathKey)
		if storePath == "" {
			return fmt.Errorf("%s not set", storePathKey)
		}

		db, err := pebbledb.Open(storePath)
		if err != nil {
			return err
		}
		defer db.Close()

		epoch, err := db.Epoch()
		if err != nil {
			return err
		}
		lastRotation, err := db.LastRotationTimestamp()
		if err != nil {
			return err
		}

		fmt.Printf("current epoch:  %d\n", epoch)
		fmt.Printf("last rotation:  %d\n", lastRotation)

		if epoch > 0 {
			hash, ok, err := db.SignersHashForEpoch(epoch)
			if err != nil {
				return err
			}
			if ok {
				fmt.Printf("signers hash:   %s\n", hash)
			}
		}
		return nil
	},
}

// buildViper wires flags and environment into a viper instance, loading the
// config file when one is provided. Flags take precedence over the file.
func buildViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if v.IsSet(configFileKey) && v.GetString(configFileKey) != "" {
		v.SetConfigFile(v.GetString(configFileKey))
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func init() {
	statusCmd.Flags().String(configFileKey, "", "JSON config file")
	statusCmd.Flags().String(storePathKey, "", "Path to the gateway pebble store")
}
