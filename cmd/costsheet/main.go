// Command costsheet keeps an ingredient costing sheet on the local disk.
//
//	costsheet add "Flour" 20.00 2.5 kg
//	costsheet list
//	costsheet total
//	costsheet remove item_01h455vb4pex5vsknk084sn02q
//	costsheet clear --yes
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
