package identity

import "math/rand"

var demoAdjectives = []string{
	"brisk", "calm", "clever", "eager", "gentle", "keen",
	"lively", "mellow", "nimble", "quiet", "swift", "witty",
}

var demoAnimals = []string{
	"badger", "falcon", "heron", "lynx", "marmot", "otter",
	"panda", "raven", "stoat", "tapir", "vole", "wren",
}

// generateDemoName produces a readable name for anonymous demo users.
func generateDemoName() string {
	adjective := demoAdjectives[rand.Intn(len(demoAdjectives))]
	animal := demoAnimals[rand.Intn(len(demoAnimals))]
	return adjective + " " + animal
}
