// Command vfpudemo runs a single vector floating-point operation through
// the vfpu emulator and prints the resulting lanes and sticky flags. It
// exists for manual exploration of platform/rounding-mode combinations,
// not as a production entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajroetker/vectorfpu/vfpu"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vfpudemo",
		Short:         "Run one vectorized IEEE-754 op and print its sticky flags",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDemo,
	}

	flags := cmd.Flags()
	flags.String("platform", "riscv", "target platform: riscv, x86, or arm")
	flags.String("rounding", "ties-even", "rounding mode: ties-even, toward-zero, toward-neg, toward-pos, or ties-away")
	flags.String("op", "add", "operation: add, sub, mul, div, sqrt, or fma")
	flags.Int("width", 64, "binary width: 32 or 64")
	flags.Float64Slice("a", nil, "first operand vector, comma-separated")
	flags.Float64Slice("b", nil, "second operand vector, comma-separated (ignored for sqrt)")
	flags.Float64Slice("c", nil, "third operand vector, comma-separated (fma only)")
	flags.Bool("arm-default-nan", false, "with --platform arm, also set FPCR.DN = 1")

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	platformName, _ := flags.GetString("platform")
	roundingName, _ := flags.GetString("rounding")
	op, _ := flags.GetString("op")
	width, _ := flags.GetInt("width")
	a, _ := flags.GetFloat64Slice("a")
	b, _ := flags.GetFloat64Slice("b")
	c, _ := flags.GetFloat64Slice("c")
	armDefaultNaN, _ := flags.GetBool("arm-default-nan")

	platform, err := parsePlatform(platformName)
	if err != nil {
		return err
	}
	rounding, err := parseRoundingMode(roundingName)
	if err != nil {
		return err
	}
	if width != 32 && width != 64 {
		return fmt.Errorf("vfpudemo: --width must be 32 or 64, got %d", width)
	}
	if len(a) == 0 {
		return fmt.Errorf("vfpudemo: --a is required")
	}

	e := vfpu.NewEngine()
	e.ConfigurePlatform(platform)
	if platform == vfpu.PlatformARM && armDefaultNaN {
		e.ConfigureARMDefaultNaN()
	}
	e.SetRoundingMode(rounding)

	if width == 32 {
		return runDemo32(cmd, e, op, a, b, c)
	}
	return runDemo64(cmd, e, op, a, b, c)
}

func runDemo32(cmd *cobra.Command, e *vfpu.Engine, op string, a, b, c []float64) error {
	av := toFloat32(a)
	bv := toFloat32(b)
	cv := toFloat32(c)
	dst := make([]float32, len(av))

	switch op {
	case "add":
		e.VAddF32(dst, av, matchLen32(bv, len(av)))
	case "sub":
		e.VSubF32(dst, av, matchLen32(bv, len(av)))
	case "mul":
		e.VMulF32(dst, av, matchLen32(bv, len(av)))
	case "div":
		e.VDivF32(dst, av, matchLen32(bv, len(av)))
	case "sqrt":
		e.VSqrtF32(dst, av)
	case "fma":
		e.VFmaF32(dst, av, matchLen32(bv, len(av)), matchLen32(cv, len(av)))
	default:
		return fmt.Errorf("vfpudemo: unknown op %q", op)
	}

	printResult32(cmd, dst, e.ReadFlags())
	return nil
}

func runDemo64(cmd *cobra.Command, e *vfpu.Engine, op string, a, b, c []float64) error {
	dst := make([]float64, len(a))

	switch op {
	case "add":
		e.VAddF64(dst, a, matchLen64(b, len(a)))
	case "sub":
		e.VSubF64(dst, a, matchLen64(b, len(a)))
	case "mul":
		e.VMulF64(dst, a, matchLen64(b, len(a)))
	case "div":
		e.VDivF64(dst, a, matchLen64(b, len(a)))
	case "sqrt":
		e.VSqrtF64(dst, a)
	case "fma":
		e.VFmaF64(dst, a, matchLen64(b, len(a)), matchLen64(c, len(a)))
	default:
		return fmt.Errorf("vfpudemo: unknown op %q", op)
	}

	printResult64(cmd, dst, e.ReadFlags())
	return nil
}

func printResult32(cmd *cobra.Command, dst []float32, flags vfpu.FlagRegister) {
	fmt.Fprintf(cmd.OutOrStdout(), "result: %v\n", dst)
	printFlags(cmd, flags)
}

func printResult64(cmd *cobra.Command, dst []float64, flags vfpu.FlagRegister) {
	fmt.Fprintf(cmd.OutOrStdout(), "result: %v\n", dst)
	printFlags(cmd, flags)
}

func printFlags(cmd *cobra.Command, flags vfpu.FlagRegister) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "invalid=%t divByZero=%t overflow=%t underflow=%t inexact=%t\n",
		flags.Invalid, flags.DivByZero, flags.Overflow, flags.Underflow, flags.Inexact)
	fmt.Fprintf(out, "rounding=%s nanProp=%s\n", flags.RoundingMode, flags.NaNPropScheme)
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// matchLen32 pads a short or empty operand vector by repeating its last
// element (or zero, if empty) so every driver call sees equal-length
// slices; vfpudemo is a manual exploration tool, not a strict API.
func matchLen32(v []float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		switch {
		case len(v) == 0:
			out[i] = 0
		case i < len(v):
			out[i] = v[i]
		default:
			out[i] = v[len(v)-1]
		}
	}
	return out
}

func matchLen64(v []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		switch {
		case len(v) == 0:
			out[i] = 0
		case i < len(v):
			out[i] = v[i]
		default:
			out[i] = v[len(v)-1]
		}
	}
	return out
}

func parsePlatform(name string) (vfpu.Platform, error) {
	switch name {
	case "riscv":
		return vfpu.PlatformRISCV, nil
	case "x86":
		return vfpu.PlatformX86, nil
	case "arm":
		return vfpu.PlatformARM, nil
	default:
		return 0, fmt.Errorf("vfpudemo: unknown platform %q (want riscv, x86, or arm)", name)
	}
}

func parseRoundingMode(name string) (vfpu.RoundingMode, error) {
	switch name {
	case "ties-even":
		return vfpu.RoundTiesToEven, nil
	case "toward-zero":
		return vfpu.RoundTowardZero, nil
	case "toward-neg":
		return vfpu.RoundTowardNegative, nil
	case "toward-pos":
		return vfpu.RoundTowardPositive, nil
	case "ties-away":
		return vfpu.RoundTiesToAway, nil
	default:
		return 0, fmt.Errorf("vfpudemo: unknown rounding mode %q", name)
	}
}
