package services

// Candidate is one entry in the static fallback catalog: a well-known
// track tagged with the attributes the fallback recommender matches on.
type Candidate struct {
	Title  string
	Artist string
	Genre  string
	Decade string
	Region string
	Tempo  string
}

// Rules holds the static mapping tables the pipeline is configured
// with: the genre-to-region hints and the fallback candidate catalog.
// They are plain data, injected rather than hard-coded into branching
// logic, so deployments can swap them without touching the pipeline.
type Rules struct {
	GenreRegions map[string]string
	Candidates   []Candidate
}

// RegionFor resolves a (lower-cased) genre tag to a region label, or ""
// when the table has no opinion.
func (r Rules) RegionFor(genre string) string {
	return r.GenreRegions[genre]
}

// DefaultRules returns the built-in rule tables.
func DefaultRules() Rules {
	return Rules{
		GenreRegions: map[string]string{
			"k-pop":      "South Korea",
			"j-pop":      "Japan",
			"latin":      "Latin America",
			"reggaeton":  "Latin America",
			"bossa nova": "Brazil",
			"samba":      "Brazil",
			"afrobeats":  "West Africa",
			"bollywood":  "South Asia",
			"britpop":    "United Kingdom",
			"uk garage":  "United Kingdom",
			"grime":      "United Kingdom",
			"country":    "North America",
			"blues":      "North America",
			"flamenco":   "Spain",
			"celtic":     "Ireland",
			"chanson":    "France",
		},
		Candidates: []Candidate{
			{Title: "Blinding Lights", Artist: "The Weeknd", Genre: "pop", Decade: "2010s", Tempo: "171 BPM"},
			{Title: "Dancing Queen", Artist: "ABBA", Genre: "pop", Decade: "1970s", Tempo: "101 BPM"},
			{Title: "Like a Prayer", Artist: "Madonna", Genre: "pop", Decade: "1980s", Tempo: "111 BPM"},
			{Title: "Rolling in the Deep", Artist: "Adele", Genre: "pop", Decade: "2010s", Tempo: "105 BPM"},
			{Title: "Smells Like Teen Spirit", Artist: "Nirvana", Genre: "rock", Decade: "1990s", Tempo: "117 BPM"},
			{Title: "Bohemian Rhapsody", Artist: "Queen", Genre: "rock", Decade: "1970s", Tempo: "72 BPM"},
			{Title: "Seven Nation Army", Artist: "The White Stripes", Genre: "rock", Decade: "2000s", Tempo: "124 BPM"},
			{Title: "Wonderwall", Artist: "Oasis", Genre: "britpop", Decade: "1990s", Region: "United Kingdom", Tempo: "87 BPM"},
			{Title: "Lose Yourself", Artist: "Eminem", Genre: "hip hop", Decade: "2000s", Tempo: "86 BPM"},
			{Title: "Juicy", Artist: "The Notorious B.I.G.", Genre: "hip hop", Decade: "1990s", Tempo: "95 BPM"},
			{Title: "Alright", Artist: "Kendrick Lamar", Genre: "hip hop", Decade: "2010s", Tempo: "110 BPM"},
			{Title: "Strobe", Artist: "deadmau5", Genre: "electronic", Decade: "2000s", Tempo: "128 BPM"},
			{Title: "Midnight City", Artist: "M83", Genre: "electronic", Decade: "2010s", Tempo: "105 BPM"},
			{Title: "Around the World", Artist: "Daft Punk", Genre: "house", Decade: "1990s", Region: "France", Tempo: "121 BPM"},
			{Title: "So What", Artist: "Miles Davis", Genre: "jazz", Decade: "1950s", Tempo: "136 BPM"},
			{Title: "Take Five", Artist: "The Dave Brubeck Quartet", Genre: "jazz", Decade: "1950s", Tempo: "174 BPM"},
			{Title: "Jolene", Artist: "Dolly Parton", Genre: "country", Decade: "1970s", Region: "North America", Tempo: "109 BPM"},
			{Title: "The Thrill Is Gone", Artist: "B.B. King", Genre: "blues", Decade: "1960s", Region: "North America", Tempo: "92 BPM"},
			{Title: "Clair de Lune", Artist: "Claude Debussy", Genre: "classical", Decade: "1900s", Tempo: "66 BPM"},
			{Title: "Despacito", Artist: "Luis Fonsi", Genre: "reggaeton", Decade: "2010s", Region: "Latin America", Tempo: "89 BPM"},
			{Title: "The Girl from Ipanema", Artist: "Stan Getz & João Gilberto", Genre: "bossa nova", Decade: "1960s", Region: "Brazil", Tempo: "130 BPM"},
			{Title: "Dynamite", Artist: "BTS", Genre: "k-pop", Decade: "2020s", Region: "South Korea", Tempo: "114 BPM"},
			{Title: "Essence", Artist: "Wizkid", Genre: "afrobeats", Decade: "2020s", Region: "West Africa", Tempo: "104 BPM"},
			{Title: "No Woman, No Cry", Artist: "Bob Marley & The Wailers", Genre: "reggae", Decade: "1970s", Tempo: "79 BPM"},
			{Title: "Skinny Love", Artist: "Bon Iver", Genre: "indie", Decade: "2000s", Tempo: "77 BPM"},
			{Title: "Do I Wanna Know?", Artist: "Arctic Monkeys", Genre: "indie", Decade: "2010s", Region: "United Kingdom", Tempo: "85 BPM"},
		},
	}
}
