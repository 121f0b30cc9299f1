package sample

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func run() {
	fmt.Println(http.StatusOK, cobra.MinimumNArgs(1))
}
