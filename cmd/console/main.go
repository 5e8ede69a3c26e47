package main

import (
	"os"

	"github.com/ynastt/course-admin/internal/console"
)

func main() {
	os.Exit(console.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
