//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/modscope/dsp/core"
	"github.com/cwbudde/modscope/dsp/modem"
	"github.com/cwbudde/modscope/dsp/signal"
	"github.com/cwbudde/modscope/internal/webdemo"
	statstime "github.com/cwbudde/modscope/stats/time"
)

var (
	session *webdemo.Session
	funcs   []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		duration, sampleRate := 1.0, 1000.0
		if len(args) > 0 {
			duration = args[0].Float()
		}
		if len(args) > 1 {
			sampleRate = args[1].Float()
		}
		s, err := webdemo.NewSession(
			core.WithDuration(duration),
			core.WithSampleRate(sampleRate),
		)
		if err != nil {
			return err.Error()
		}
		session = s
		return js.Null()
	}))

	api.Set("setSignal", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		p := args[0]
		typ, err := signal.ParseType(p.Get("type").String())
		if err != nil {
			return err.Error()
		}
		err = session.SetSignal(webdemo.SignalParams{
			Type:        typ,
			FrequencyHz: p.Get("freq").Float(),
			Amplitude:   p.Get("amp").Float(),
			OffsetV:     p.Get("offset").Float(),
		})
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setCarrier", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		p := args[0]
		err := session.SetCarrier(modem.CarrierConfig{
			FrequencyHz: p.Get("freq").Float(),
			Amplitude:   p.Get("amp").Float(),
			Index:       p.Get("index").Float(),
			DeviationHz: p.Get("deviation").Float(),
			BitRateHz:   p.Get("bitrate").Float(),
		})
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setScheme", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		scheme, err := modem.ParseScheme(args[0].String())
		if err != nil {
			return err.Error()
		}
		if err := session.SetScheme(scheme); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setTimebase", export(func(args []js.Value) any {
		if session == nil || len(args) < 2 {
			return js.Null()
		}
		if err := session.SetTimebase(args[0].Float(), args[1].Float()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setSeed", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		session.SetSeed(int64(args[0].Int()))
		return js.Null()
	}))

	api.Set("generate", export(func(args []js.Value) any {
		if session == nil {
			return js.Null()
		}
		if err := session.Generate(); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("modulate", export(func(args []js.Value) any {
		if session == nil {
			return js.Null()
		}
		if err := session.Modulate(); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("demodulate", export(func(args []js.Value) any {
		if session == nil {
			return js.Null()
		}
		if err := session.Demodulate(); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if session == nil {
			return js.Null()
		}
		session.Reset()
		return js.Null()
	}))

	api.Set("state", export(func(args []js.Value) any {
		if session == nil {
			return "uninitialized"
		}
		return session.State().String()
	}))

	api.Set("times", export(func(args []js.Value) any {
		if session == nil {
			return js.Global().Get("Float64Array").New(0)
		}
		return toTypedArray(session.Times())
	}))

	api.Set("message", export(func(args []js.Value) any {
		if session == nil {
			return js.Global().Get("Float64Array").New(0)
		}
		return toTypedArray(session.Message())
	}))

	api.Set("modulated", export(func(args []js.Value) any {
		if session == nil {
			return js.Global().Get("Float64Array").New(0)
		}
		return toTypedArray(session.Modulated())
	}))

	api.Set("recovered", export(func(args []js.Value) any {
		if session == nil {
			return js.Global().Get("Float64Array").New(0)
		}
		return toTypedArray(session.Recovered())
	}))

	api.Set("carrierPreview", export(func(args []js.Value) any {
		if session == nil {
			return js.Global().Get("Float64Array").New(0)
		}
		wave, err := session.CarrierPreview()
		if err != nil {
			return err.Error()
		}
		return toTypedArray(wave)
	}))

	api.Set("spectrum", export(func(args []js.Value) any {
		if session == nil {
			return js.Null()
		}
		freqs, mags, err := session.ModulatedSpectrum()
		if err != nil {
			return err.Error()
		}
		out := js.Global().Get("Object").New()
		out.Set("freqs", toTypedArray(freqs))
		out.Set("mags", toTypedArray(mags))
		return out
	}))

	api.Set("stats", export(func(args []js.Value) any {
		if session == nil {
			return js.Null()
		}
		wave := session.Message()
		if len(args) > 0 && args[0].String() == "modulated" {
			wave = session.Modulated()
		}
		st := statstime.Calculate(wave, session.Grid().SampleRate())
		out := js.Global().Get("Object").New()
		out.Set("length", st.Length)
		out.Set("dc", st.DC)
		out.Set("rms", st.RMS)
		out.Set("peak", st.Peak)
		out.Set("range", st.Range)
		out.Set("crest", st.CrestFactor)
		out.Set("freq", st.FrequencyHz)
		return out
	}))

	js.Global().Set("ModScopeDemo", api)
	select {}
}

func toTypedArray(data []float64) js.Value {
	arr := js.Global().Get("Float64Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
