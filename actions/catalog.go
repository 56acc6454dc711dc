package actions

// Catalog is the full set of companion actions together with the state the
// stateful ones share.
type Catalog struct {
	*Registry

	Stream   *StreamState
	Overlays *OverlayState
	VOD      *VODReview
}

func NewCatalog() *Catalog {
	c := &Catalog{
		Registry: NewRegistry(),
		Stream:   &StreamState{},
		Overlays: NewOverlayState(),
		VOD:      &VODReview{},
	}

	c.Register(TabQuick,
		banner{name: "Save Clip", category: "Quick Actions", title: "Clip", format: "Saving clip..."},
		masterOverlayToggle{state: c.Overlays},
	)

	registerQuestions(c.Registry, TabPolls, "Poll", []group{
		{"Landing Spots", []string{"Tilted Towers", "Pleasant Park", "Retail Row", "Lazy Lake", "Random Drop", "Viewer Choice"}},
		{"Loadout Challenge", []string{"Pistols Only", "No Building", "Snipers Only", "Common Weapons Only", "No Healing Items"}},
		{"Stream Polls", []string{"One More Game?", "Need a Break?", "Squad Up with Viewers?", "Change Game Mode?"}},
	})

	registerQuestions(c.Registry, TabPredictions, "Prediction", []group{
		{"Game Predictions", []string{"Victory This Game?", "Top 5 Finish?", "10+ Eliminations?", "Find Legendary Weapon?"}},
		{"Session Goals", []string{"3+ Wins Today?", "20+ Kill Game?", "New Personal Record?", "Complete Challenge?"}},
	})
	c.Register(TabPredictions, customPrediction{})

	for _, name := range []string{"Solo Cash Cup", "Duo Arena", "Trio Tournament", "Squad Scrims"} {
		c.Register(TabTournament, tournament(name))
	}

	for _, g := range []group{
		{"Combat Challenges", []string{"No Building", "Pistols Only", "No Healing", "Common Weapons", "Sniper Only"}},
		{"Movement Challenges", []string{"No Running", "Must Crouch", "No Vehicles", "Water Travel Only", "Must Dance After Kills"}},
		{"Strategy Challenges", []string{"Edge of Storm", "One POI Only", "No Farming", "Random Loadout", "First Weapons Only"}},
	} {
		for _, name := range g.options {
			c.Register(TabChallenges, challenge(g.category, name))
		}
	}

	for _, name := range []string{"Tournament Overlay", "Stats Display", "Victory Counter", "Challenge Timer", "Custom Text"} {
		c.Register(TabOverlays, overlayToggle{name: name, state: c.Overlays})
	}

	c.Register(TabStream,
		connectStream{state: c.Stream},
		banner{name: "Start Poll", category: "Stream Integration", title: "Stream Poll", format: "Starting quick stream poll..."},
		banner{name: "Channel Points Reward", category: "Stream Integration", title: "Channel Points", format: "Opening channel points manager..."},
		banner{name: "Chat Commands", category: "Stream Integration", title: "Chat Commands", format: "Opening chat commands setup..."},
	)

	for _, r := range []struct{ name, message string }{
		{"Start Recording", "Starting replay recording..."},
		{"Save Last Match", "Saving replay..."},
		{"View Replays", "Opening replay viewer..."},
		{"Export Highlight", "Exporting highlight..."},
	} {
		c.Register(TabReplays, banner{name: r.name, category: "Match Replay Controls", title: "Replays", format: r.message})
	}

	c.Register(TabVOD,
		loadVOD{vod: c.VOD},
		addTimestamp{vod: c.VOD},
		exportNotes{vod: c.VOD},
		banner{name: "Analysis Tools", category: "VOD Review", title: "Analysis Tools", format: "Opening analysis tools..."},
	)

	for _, g := range []group{
		{"Practice Modes", []string{"Box Fighting", "Build Battles", "Zone Wars", "Realistic 1v1"}},
		{"Team Scrims", []string{"Duo Scrims", "Trio Arena", "Squad Custom"}},
	} {
		for _, name := range g.options {
			c.Register(TabScrims, scrim(g.category, name))
		}
	}

	return c
}

type group struct {
	category string
	options  []string
}

func registerQuestions(r *Registry, tab Tab, title string, groups []group) {
	for _, g := range groups {
		for _, text := range g.options {
			r.Register(tab, question{category: g.category, text: text, title: title})
		}
	}
}
