// main is the entry point of the aiready CLI.
package main

import (
	"github.com/huangsam/aiready/cmd"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("aiready failed", err)
	}
}
