package main

import (
	"github.com/bornholm/todo/internal/command"
	"github.com/bornholm/todo/internal/command/todo"
)

func main() {
	command.Main(
		"todo", "a todo api client",
		todo.Commands()...,
	)
}
