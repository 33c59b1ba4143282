package main

import "github.com/AlexZhen345/LifeOS/cmd/lifeos/root"

func main() {
	root.Execute()
}
