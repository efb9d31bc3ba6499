package main

// Word lists per theme. All entries are uppercase; the generator filters by
// length, so long words are fine even for small grids.
var themeWords = map[string][]string{
	"animals": {
		"CAT", "DOG", "FOX", "OWL", "BAT", "BEAR", "WOLF", "LION", "DEER",
		"FROG", "HAWK", "MOLE", "TIGER", "ZEBRA", "HORSE", "SNAKE", "EAGLE",
		"OTTER", "SHEEP", "RABBIT", "MONKEY", "JAGUAR", "BADGER", "TURTLE",
		"PANTHER", "GIRAFFE", "LEOPARD", "HAMSTER", "ELEPHANT", "KANGAROO",
	},
	"food": {
		"PIE", "JAM", "EGG", "RICE", "TACO", "SOUP", "CAKE", "CORN", "PEAR",
		"PLUM", "BREAD", "PIZZA", "PASTA", "APPLE", "MANGO", "OLIVE", "ONION",
		"BAGEL", "CARROT", "CHEESE", "BANANA", "TOMATO", "WAFFLE", "PEPPER",
		"PANCAKE", "PRETZEL", "AVOCADO", "SANDWICH", "DUMPLING", "CROISSANT",
	},
	"space": {
		"SUN", "STAR", "MOON", "MARS", "NOVA", "VOID", "COMET", "ORBIT",
		"VENUS", "PLUTO", "TITAN", "FLARE", "METEOR", "SATURN", "NEBULA",
		"GALAXY", "COSMOS", "APOLLO", "JUPITER", "ECLIPSE", "GRAVITY",
		"NEUTRON", "ASTEROID", "SUPERNOVA", "TELESCOPE", "SATELLITE",
	},
	"sports": {
		"SKI", "ROW", "BOX", "GOLF", "SWIM", "DIVE", "RACE", "SURF", "GOAL",
		"RUGBY", "SCORE", "TRACK", "SKATE", "TENNIS", "SOCCER", "HOCKEY",
		"KARATE", "BOXING", "ARCHERY", "CRICKET", "CYCLING", "FENCING",
		"BASEBALL", "SWIMMING", "MARATHON", "WRESTLING", "VOLLEYBALL",
	},
	"ocean": {
		"EEL", "RAY", "COD", "CRAB", "KELP", "REEF", "TIDE", "WAVE", "CLAM",
		"SHARK", "WHALE", "CORAL", "SQUID", "SHELL", "OYSTER", "URCHIN",
		"WALRUS", "MARLIN", "SALMON", "DOLPHIN", "OCTOPUS", "NARWHAL",
		"SEAWEED", "PLANKTON", "STINGRAY", "JELLYFISH", "ANGLERFISH",
	},
}

const fallbackTheme = "animals"

func wordsForTheme(theme string) []string {
	if list, ok := themeWords[theme]; ok {
		return list
	}
	return themeWords[fallbackTheme]
}
