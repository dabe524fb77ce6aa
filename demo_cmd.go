package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/lafrance/internal/tts"
)

// sampleSentences are short phrases suited to beginner French practice.
var sampleSentences = []string{
	"Bonjour Madame, je voudrais un café.",
	"Je m'appelle Paul, et toi?",
	"Je parle arabe avec ma voisine marocaine.",
	"Est-ce que Paris est propre?",
	"Au revoir!",
	"S'il vous plaît.",
	"Embrasse-moi, s'il te plaît.",
	"Leo mange souvent ici.",
	"Tu connais Lisa? Elle travaille ici.",
	"Je travaille aussi ici.",
}

var demoVoices = []string{"denise", "henri", "eloise"}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate a handful of sample phrases with rotating voices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(voiceName)
		if err != nil {
			return err
		}

		play := autoPlay
		for i, text := range sampleSentences[:6] {
			voice := demoVoices[i%len(demoVoices)]
			if err := session.SetVoice(voice); err != nil {
				return err
			}

			fmt.Printf("[%d/6] %s (%s)\n", i+1, text, voice)
			_, err := session.Speak(cmd.Context(), text, tts.Options{
				Filename: fmt.Sprintf("demo_%02d_%s", i+1, voice),
				Play:     &play,
				Verbose:  true,
			})
			if err != nil {
				return err
			}
			time.Sleep(500 * time.Millisecond)
		}
		return nil
	},
}
