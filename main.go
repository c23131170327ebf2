/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/cljtags/cmd"
	"github.com/josephgoksu/cljtags/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
