package kv

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if err := strataClient.Put(key, []byte(value)); err != nil {
				return err
			} else {
				fmt.Println("set successfully")
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Gets the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, found, err := strataClient.Get(args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("key not found")
				return nil
			}
			fmt.Println(string(value))
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := strataClient.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("deleted successfully")
			return nil
		},
	}
	scanCmd = &cobra.Command{
		Use:   "scan [prefix]",
		Short: "Lists all key-value pairs with the given key prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := strataClient.Scan(args[0])
			if err != nil {
				return err
			}
			for _, p := range pairs {
				fmt.Printf("%s\t%s\n", p.Key, p.Value)
			}
			fmt.Printf("%d pair(s)\n", len(pairs))
			return nil
		},
	}
	psetCmd = &cobra.Command{
		Use:   "pset [path] [value]",
		Short: "Sets the value for a hierarchical path (segments separated by '/')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments := strings.Split(args[0], "/")
			if err := strataClient.PutPath(segments, []byte(args[1])); err != nil {
				return err
			}
			fmt.Println("pset successfully")
			return nil
		},
	}
	pgetCmd = &cobra.Command{
		Use:   "pget [path]",
		Short: "Gets the value for a hierarchical path (segments separated by '/')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments := strings.Split(args[0], "/")
			value, found, err := strataClient.GetPath(segments...)
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("path not found")
				return nil
			}
			fmt.Println(string(value))
			return nil
		},
	}
	createTableCmd = &cobra.Command{
		Use:   "create-table [name]",
		Short: "Creates a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := strataClient.CreateTable(args[0]); err != nil {
				return err
			}
			fmt.Println("table created")
			return nil
		},
	}
)
