package main

import "os"

func main() {
	rootCmd.AddCommand(backupCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
