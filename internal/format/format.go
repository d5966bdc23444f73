package format

// Spec is the static description of one target output format.
type Spec struct {
	// Key identifies the format in config, flags, and the manifest.
	Key string
	// Extension is the output file extension, leading dot included.
	Extension string
	// Description is a human-readable label for listings.
	Description string
	// Encoders is the preference-ordered list of acceptable encoder
	// identifiers; the first one present in the capability set wins.
	Encoders []string
	// CodecArgs maps the chosen encoder to its codec-specific arguments.
	CodecArgs func(encoder string) []string
	// ExtraArgs are container-level arguments appended after the codec
	// arguments, before the destination path.
	ExtraArgs []string
}

// Resolved pairs a Spec with the encoder chosen for this run.
type Resolved struct {
	Spec    Spec
	Encoder string
}

var registry = []Spec{
	{
		Key:         "mp3",
		Extension:   ".mp3",
		Description: "MPEG audio layer III",
		Encoders:    []string{"libmp3lame"},
		CodecArgs: func(encoder string) []string {
			return []string{"-c:a", encoder, "-q:a", "2"}
		},
	},
	{
		Key:         "flac",
		Extension:   ".flac",
		Description: "Free Lossless Audio Codec",
		Encoders:    []string{"flac"},
		CodecArgs: func(encoder string) []string {
			return []string{"-c:a", encoder}
		},
	},
	{
		Key:         "ogg",
		Extension:   ".ogg",
		Description: "Ogg Vorbis",
		Encoders:    []string{"libvorbis", "vorbis"},
		CodecArgs: func(encoder string) []string {
			args := []string{"-c:a", encoder, "-q:a", "5"}
			if encoder == "vorbis" {
				// The native vorbis encoder is marked experimental.
				args = append(args, "-strict", "-2")
			}
			return args
		},
	},
	{
		Key:         "opus",
		Extension:   ".opus",
		Description: "Opus in an Ogg container",
		Encoders:    []string{"libopus", "opus"},
		CodecArgs: func(encoder string) []string {
			args := []string{"-c:a", encoder, "-b:a", "128k"}
			if encoder == "opus" {
				args = append(args, "-strict", "-2")
			}
			return args
		},
	},
	{
		Key:         "m4a",
		Extension:   ".m4a",
		Description: "AAC in an MP4 container",
		Encoders:    []string{"libfdk_aac", "aac"},
		CodecArgs: func(encoder string) []string {
			return []string{"-c:a", encoder, "-b:a", "192k"}
		},
		ExtraArgs: []string{"-movflags", "+faststart"},
	},
	{
		Key:         "wav",
		Extension:   ".wav",
		Description: "16-bit PCM WAV",
		Encoders:    []string{"pcm_s16le"},
		CodecArgs: func(encoder string) []string {
			return []string{"-c:a", encoder}
		},
	},
}

// Known returns every supported format in registry order.
func Known() []Spec {
	return append([]Spec(nil), registry...)
}

// Lookup returns the Spec for key.
func Lookup(key string) (Spec, bool) {
	for _, spec := range registry {
		if spec.Key == key {
			return spec, true
		}
	}
	return Spec{}, false
}
