package main

import "github.com/rcloneui/i18nsync/cmd"

func main() {
	cmd.Execute()
}
