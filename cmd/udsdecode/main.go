// udsdecode decodes a raw diagnostic response buffer given as a hex string
// and prints the interpreted parameters.
//
//	udsdecode -version 2013 500032000A
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/LoveWonYoung/udskit/services"
	"github.com/LoveWonYoung/udskit/uds"
)

func main() {
	versionFlag := flag.String("version", "2020", "standard version: pre-2006, 2006, 2013 or 2020")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if flag.NArg() != 1 {
		log.Fatal().Msg("expected exactly one hex-encoded response argument")
	}

	raw, err := hex.DecodeString(strings.ReplaceAll(flag.Arg(0), " ", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid hex input")
	}

	version, err := parseVersion(*versionFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid standard version")
	}

	resp, err := uds.ParseResponse(raw)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse response envelope")
	}

	registry := services.NewRegistry()
	svc, found := registry.ByRequestID(resp.ServiceID)
	if !found {
		log.Fatal().Hex("sid", []byte{resp.ServiceID}).Msg("unknown service")
	}

	if !resp.IsPositive() {
		log.Info().
			Str("service", svc.Name).
			Str("nrc", resp.Code.Name()).
			Bool("expected", svc.IsNegativeResponseSupported(resp.Code)).
			Msg("negative response")
		return
	}

	rec, err := svc.InterpretResponse(resp.Data, version)
	if err != nil {
		log.Fatal().Err(err).Str("service", svc.Name).Msg("cannot interpret response")
	}

	fmt.Printf("%s (0x%02X)\n", svc.Name, svc.RequestID())
	if svc.UsesSubfunction {
		fmt.Printf("  subfunction: %d (%s)\n", rec.Subfunction, svc.Subfunctions.Name(rec.Subfunction))
	}
	for _, item := range rec.ParameterItems(rec.Subfunction) {
		if b, ok := item.Value.([]byte); ok {
			fmt.Printf("  %s: % X\n", item.Name, b)
			continue
		}
		fmt.Printf("  %s: %v\n", item.Name, item.Value)
	}
}

func parseVersion(s string) (uds.StandardVersion, error) {
	switch s {
	case "pre-2006":
		return uds.StandardPre2006, nil
	case "2006":
		return uds.Standard2006, nil
	case "2013":
		return uds.Standard2013, nil
	case "2020":
		return uds.Standard2020, nil
	}
	return 0, fmt.Errorf("unknown standard version %q", s)
}
