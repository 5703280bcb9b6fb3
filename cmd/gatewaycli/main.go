// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// gatewaycli is an operator tool for the gateway protocol: offline hashing
// and verification helpers plus read-only inspection of a gateway store.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/luxfi/gateway"
	"github.com/luxfi/gateway/hashing"
	"github.com/luxfi/gateway/merkle"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gatewaycli",
	Short: "Gateway protocol operator tooling",
	Long: `gatewaycli provides offline helpers for the cross-chain gateway:
canonical signer set hashing, command id derivation, block header checks,
merkle inclusion verification, and read-only store inspection.`,
}

func init() {
	rootCmd.AddCommand(signersHashCmd)
	rootCmd.AddCommand(commandIDCmd)
	rootCmd.AddCommand(verifyHeaderCmd)
	rootCmd.AddCommand(verifyMerkleCmd)
	rootCmd.AddCommand(statusCmd)
}

// signerSetFile is the JSON layout accepted by signers-hash.
type signerSetFile struct {
	Signers []struct {
		PublicKey string `json:"publicKey"`
		Weight    uint64 `json:"weight"`
	} `json:"signers"`
	Threshold uint64 `json:"threshold"`
	Nonce     string `json:"nonce"`
}

var signersHashCmd = &cobra.Command{
	Use:   "signers-hash",
	Short: "Compute the canonical hash of a signer set",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var file signerSetFile
		if err := json.Unmarshal(raw, &file); err != nil {
			return fmt.Errorf("invalid signer set file: %w", err)
		}

		signers := make([]gateway.WeightedSigner, len(file.Signers))
		for i, s := range file.Signers {
			key, err := hex.DecodeString(strings.TrimPrefix(s.PublicKey, "0x"))
			if err != nil || len(key) != gateway.PublicKeyLen {
				return fmt.Errorf("signer %d: invalid public key", i)
			}
			copy(signers[i].PublicKey[:], key)
			signers[i].Weight = s.Weight
		}

		var nonce [32]byte
		if file.Nonce != "" {
			nonceBytes, err := hex.DecodeString(strings.TrimPrefix(file.Nonce, "0x"))
			if err != nil || len(nonceBytes) != 32 {
				return fmt.Errorf("invalid nonce")
			}
			copy(nonce[:], nonceBytes)
		}

		set, err := gateway.NewWeightedSignerSet(signers, uint256.NewInt(file.Threshold), nonce)
		if err != nil {
			return err
		}

		fmt.Printf("signers hash: %s\n", set.Hash())
		fmt.Printf("total weight: %s\n", set.TotalWeight())
		return nil
	},
}

var commandIDCmd = &cobra.Command{
	Use:   "command-id",
	Short: "Derive the command id for a cross-chain message",
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceChain, _ := cmd.Flags().GetString("source-chain")
		messageID, _ := cmd.Flags().GetString("message-id")

		fmt.Printf("command id: %s\n", hashing.CommandID(sourceChain, messageID))
		return nil
	},
}

var verifyHeaderCmd = &cobra.Command{
	Use:   "verify-header",
	Short: "Structurally validate a block header and print its hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		headerHex, _ := cmd.Flags().GetString("header")
		expectedHex, _ := cmd.Flags().GetString("expected-hash")

		headerBytes, err := hex.DecodeString(strings.TrimPrefix(headerHex, "0x"))
		if err != nil {
			return fmt.Errorf("invalid header hex: %w", err)
		}

		header, err := merkle.ParseBlockHeader(headerBytes)
		if err != nil {
			return err
		}

		headerHash := merkle.HeaderHash(headerBytes)
		fmt.Printf("version:        %d\n", header.Version)
		fmt.Printf("chain length:   %d\n", header.ChainLength)
		fmt.Printf("timestamp:      %d\n", header.Timestamp)
		fmt.Printf("tx merkle root: %x\n", header.TxMerkleRoot)
		fmt.Printf("header hash:    %x\n", headerHash)

		if expectedHex != "" {
			expected, err := hex.DecodeString(strings.TrimPrefix(expectedHex, "0x"))
			if err != nil || len(expected) != 32 {
				return fmt.Errorf("invalid expected hash")
			}
			var want [32]byte
			copy(want[:], expected)
			if headerHash != want {
				return fmt.Errorf("header hash does not match expected hash")
			}
			fmt.Println("header hash matches")
		}
		return nil
	},
}

var verifyMerkleCmd = &cobra.Command{
	Use:   "verify-merkle",
	Short: "Verify a merkle inclusion proof offline",
	RunE: func(cmd *cobra.Command, args []string) error {
		txidHex, _ := cmd.Flags().GetString("txid")
		rootHex, _ := cmd.Flags().GetString("root")
		index, _ := cmd.Flags().GetUint32("index")
		depth, _ := cmd.Flags().GetUint32("depth")
		siblingList, _ := cmd.Flags().GetString("siblings")

		txid, err := decode32(txidHex)
		if err != nil {
			return fmt.Errorf("invalid txid: %w", err)
		}
		root, err := decode32(rootHex)
		if err != nil {
			return fmt.Errorf("invalid root: %w", err)
		}

		var hashes [][32]byte
		if siblingList != "" {
			for _, part := range strings.Split(siblingList, ",") {
				sibling, err := decode32(part)
				if err != nil {
					return fmt.Errorf("invalid sibling %q: %w", part, err)
				}
				hashes = append(hashes, sibling)
			}
		}

		proof := &merkle.Proof{
			TxIndex:   index,
			TreeDepth: depth,
			Hashes:    hashes,
		}
		leaf := merkle.TaggedHash(merkle.LeafTag, txid[:])
		included, err := merkle.VerifyLeaf(leaf[:], root, proof)
		if err != nil {
			return err
		}
		if !included {
			return fmt.Errorf("transaction is not included under the given root")
		}
		fmt.Println("inclusion verified")
		return nil
	},
}

func decode32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}

func init() {
	signersHashCmd.Flags().StringP("file", "f", "", "Signer set JSON file")
	signersHashCmd.MarkFlagRequired("file")

	commandIDCmd.Flags().String("source-chain", "", "Source chain name")
	commandIDCmd.Flags().String("message-id", "", "Message id")
	commandIDCmd.MarkFlagRequired("source-chain")
	commandIDCmd.MarkFlagRequired("message-id")

	verifyHeaderCmd.Flags().String("header", "", "Serialized header (hex)")
	verifyHeaderCmd.Flags().String("expected-hash", "", "Trusted header hash (hex)")
	verifyHeaderCmd.MarkFlagRequired("header")

	verifyMerkleCmd.Flags().String("txid", "", "Transaction id (hex, 32 bytes)")
	verifyMerkleCmd.Flags().String("root", "", "Merkle root (hex, 32 bytes)")
	verifyMerkleCmd.Flags().Uint32("index", 0, "Transaction index in the block")
	verifyMerkleCmd.Flags().Uint32("depth", 0, "Tree depth")
	verifyMerkleCmd.Flags().String("siblings", "", "Comma-separated sibling hashes (hex)")
	verifyMerkleCmd.MarkFlagRequired("txid")
	verifyMerkleCmd.MarkFlagRequired("root")
}
