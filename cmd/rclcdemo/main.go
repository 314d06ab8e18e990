package main

import (
	"testing"

	"github.com/team-rocos/rclgo-executor/libtest/libtest_executor_demo"
)

func main() {
	t := new(testing.T)
	libtest_executor_demo.RTTest(t)
}
