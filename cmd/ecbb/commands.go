package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-tpm-ec/pkg/bytebuf"
	"github.com/smallyu/go-tpm-ec/pkg/ec"
)

var commands = []command{
	{"curves", "", "list supported curves", setupCurves},
	{"keygen", "", "generate a key pair", setupKeygen},
	{"digest", "MESSAGE", "hash a message with the configured hash", setupDigest},
	{"verify", "", "verify an ECDSA signature", setupVerify},
	{"add", "POINT POINT", "add two points", setupAdd},
	{"mul", "SCALAR [POINT]", "multiply a point, or the generator, by a scalar", setupMul},
	{"invert", "POINT", "negate a point", setupInvert},
	{"check", "POINT", "report whether a point is on the curve or at infinity", setupCheck},
	{"serialise", "HEX...", "length-prefix one buffer, or a sequence with --seq", setupSerialise},
	{"deserialise", "HEX", "decode a length-prefixed buffer, or a sequence with --seq", setupDeserialise},
}

func writeYAML(e *env, v any) error {
	enc := yaml.NewEncoder(e.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return enc.Close()
}

func writeHex(e *env, bb fmt.Stringer) error {
	_, err := fmt.Fprintln(e.out, bb.String())
	return err
}

func wantArgs(args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return fmt.Errorf("%w: want %d arguments, got %d", errUsage, lo, len(args))
		}
		return fmt.Errorf("%w: want %d to %d arguments, got %d", errUsage, lo, hi, len(args))
	}
	return nil
}

func parsePoint(s string) (ec.G1Point, error) {
	pt, err := ec.ParseG1Point(s)
	if err != nil {
		return ec.G1Point{}, fmt.Errorf("parsing point: %w", err)
	}
	return pt, nil
}

type curveInfo struct {
	Name           string `yaml:"name"`
	CoordinateSize int    `yaml:"coordinate_size"`
	Order          string `yaml:"order"`
	Cofactor       int64  `yaml:"cofactor"`
	Generator      string `yaml:"generator"`
	Identity       string `yaml:"identity"`
	TPMCurveID     string `yaml:"tpm_curve_id,omitempty"`
}

func setupCurves(_ *pflag.FlagSet) func(*env, []string) error {
	return func(e *env, args []string) error {
		if err := wantArgs(args, 0, 0); err != nil {
			return err
		}
		var out []curveInfo
		for _, name := range ec.SupportedCurves() {
			g, err := ec.NewGroup(name)
			if err != nil {
				return err
			}
			info := curveInfo{
				Name:           g.Name(),
				CoordinateSize: g.CoordinateSize(),
				Order:          g.Order().Text(16),
				Cofactor:       g.Cofactor().Int64(),
				Generator:      g.Generator().String(),
				Identity:       g.Identity().String(),
			}
			if id, ok := g.TPMCurveID(); ok {
				info.TPMCurveID = fmt.Sprintf("0x%04x", uint16(id))
			}
			out = append(out, info)
		}
		return writeYAML(e, out)
	}
}

type keyPairOut struct {
	Curve   string `yaml:"curve"`
	Private string `yaml:"private"`
	Public  string `yaml:"public"`
}

func setupKeygen(_ *pflag.FlagSet) func(*env, []string) error {
	return func(e *env, args []string) error {
		if err := wantArgs(args, 0, 0); err != nil {
			return err
		}
		kp, err := e.group.NewKeyPair()
		if err != nil {
			return err
		}
		e.log.Debug().Str("curve", e.group.Name()).Msg("key pair generated")
		return writeYAML(e, keyPairOut{
			Curve:   e.group.Name(),
			Private: kp.Private().HexString(),
			Public:  kp.Public().String(),
		})
	}
}

func setupDigest(_ *pflag.FlagSet) func(*env, []string) error {
	return func(e *env, args []string) error {
		if err := wantArgs(args, 1, 1); err != nil {
			return err
		}
		d, err := digest(e.cfg.Hash, []byte(args[0]))
		if err != nil {
			return err
		}
		return writeHex(e, bytebuf.Own(d))
	}
}

type verifyOut struct {
	Curve string `yaml:"curve"`
	Valid bool   `yaml:"valid"`
}

func setupVerify(fs *pflag.FlagSet) func(*env, []string) error {
	pub := fs.String("pub", "", "public point, hex X||Y")
	dig := fs.String("digest", "", "message digest, hex")
	msg := fs.String("message", "", "message text, hashed with --hash")
	sigR := fs.String("r", "", "signature r, hex")
	sigS := fs.String("s", "", "signature s, hex")

	return func(e *env, args []string) error {
		if err := wantArgs(args, 0, 0); err != nil {
			return err
		}
		if *pub == "" || *sigR == "" || *sigS == "" {
			return fmt.Errorf("%w: --pub, --r and --s are required", errUsage)
		}
		if (*dig == "") == (*msg == "") {
			return fmt.Errorf("%w: exactly one of --digest and --message is required", errUsage)
		}

		pt, err := parsePoint(*pub)
		if err != nil {
			return err
		}
		var d bytebuf.Buffer
		if *dig != "" {
			if d, err = bytebuf.ParseHex(*dig); err != nil {
				return fmt.Errorf("parsing digest: %w", err)
			}
		} else {
			raw, err := digest(e.cfg.Hash, []byte(*msg))
			if err != nil {
				return err
			}
			d = bytebuf.Own(raw)
		}
		r, err := bytebuf.ParseHex(*sigR)
		if err != nil {
			return fmt.Errorf("parsing r: %w", err)
		}
		s, err := bytebuf.ParseHex(*sigS)
		if err != nil {
			return fmt.Errorf("parsing s: %w", err)
		}

		ok, err := e.group.VerifyECDSA(pt, d, r, s)
		if err != nil {
			return err
		}
		if err := writeYAML(e, verifyOut{Curve: e.group.Name(), Valid: ok}); err != nil {
			return err
		}
		if !ok {
			return errInvalidSignature
		}
		return nil
	}
}

func setupAdd(_ *pflag.FlagSet) func(*env, []string) error {
	return func(e *env, args []string) error {
		if err := wantArgs(args, 2, 2); err != nil {
			return err
		}
		a, err := parsePoint(args[0])
		if err != nil {
			return err
		}
		b, err := parsePoint(args[1])
		if err != nil {
			return err
		}
		sum, err := e.group.Add(a, b)
		if err != nil {
			return err
		}
		return writeHex(e, sum)
	}
}

func setupMul(_ *pflag.FlagSet) func(*env, []string) error {
	return func(e *env, args []string) error {
		if err := wantArgs(args, 1, 2); err != nil {
			return err
		}
		k, err := bytebuf.ParseHex(args[0])
		if err != nil {
			return fmt.Errorf("parsing scalar: %w", err)
		}
		if len(args) == 1 {
			return writeHex(e, e.group.GeneratorMul(k))
		}
		pt, err := parsePoint(args[1])
		if err != nil {
			return err
		}
		res, err := e.group.PointMul(k, pt)
		if err != nil {
			return err
		}
		return writeHex(e, res)
	}
}

func setupInvert(_ *pflag.FlagSet) func(*env, []string) error {
	return func(e *env, args []string) error {
		if err := wantArgs(args, 1, 1); err != nil {
			return err
		}
		pt, err := parsePoint(args[0])
		if err != nil {
			return err
		}
		neg, err := e.group.Invert(pt)
		if err != nil {
			return err
		}
		return writeHex(e, neg)
	}
}

type checkOut struct {
	Curve      string `yaml:"curve"`
	OnCurve    bool   `yaml:"on_curve"`
	AtInfinity bool   `yaml:"at_infinity"`
}

func setupCheck(_ *pflag.FlagSet) func(*env, []string) error {
	return func(e *env, args []string) error {
		if err := wantArgs(args, 1, 1); err != nil {
			return err
		}
		pt, err := parsePoint(args[0])
		if err != nil {
			return err
		}
		ok, err := e.group.IsOnCurve(pt)
		if err != nil {
			return err
		}
		return writeYAML(e, checkOut{
			Curve:      e.group.Name(),
			OnCurve:    ok,
			AtInfinity: e.group.IsAtInfinity(pt),
		})
	}
}

func setupSerialise(fs *pflag.FlagSet) func(*env, []string) error {
	seq := fs.Bool("seq", false, "serialise the arguments as a sequence")

	return func(e *env, args []string) error {
		if !*seq {
			if err := wantArgs(args, 1, 1); err != nil {
				return err
			}
		}

		bbs := make([]bytebuf.Buffer, 0, len(args))
		for i, a := range args {
			bb, err := bytebuf.ParseHex(a)
			if err != nil {
				return fmt.Errorf("argument %d: %w", i+1, err)
			}
			bbs = append(bbs, bb)
		}

		var (
			out bytebuf.Buffer
			err error
		)
		if *seq {
			out, err = bytebuf.SerialiseBuffers(bbs)
		} else {
			out, err = bytebuf.Serialise(bbs[0])
		}
		if err != nil {
			return err
		}
		return writeHex(e, out)
	}
}

func setupDeserialise(fs *pflag.FlagSet) func(*env, []string) error {
	seq := fs.Bool("seq", false, "decode a sequence of buffers")

	return func(e *env, args []string) error {
		if err := wantArgs(args, 1, 1); err != nil {
			return err
		}
		in, err := bytebuf.ParseHex(args[0])
		if err != nil {
			return fmt.Errorf("parsing input: %w", err)
		}
		if !*seq {
			bb, err := bytebuf.Deserialise(in)
			if err != nil {
				return err
			}
			return writeHex(e, bb)
		}

		bbs, err := bytebuf.DeserialiseBuffers(in)
		if err != nil {
			return err
		}
		out := make([]string, len(bbs))
		for i, bb := range bbs {
			out[i] = bb.HexString()
		}
		return writeYAML(e, out)
	}
}
