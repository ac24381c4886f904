package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ultram4rine/go-paramcodec"
)

var (
	profileName = flag.String("profile", "zhenqi", "built-in or configured profile name")
	configPath  = flag.String("config", "", "YAML file with additional profiles")
	decode      = flag.Bool("decode", false, "decode a server response instead of encoding a request")
	secret      = flag.Bool("secret", false, "print the MD5 secret of the app id and input")
	value       = flag.Bool("value", false, "encode input as a bare value, without an envelope")
	method      = flag.String("method", "GETDETAIL", "API method of the request envelope")
	logLevel    = flag.String("log_level", "warn", "log level: debug, info or warn")
	logFormat   = flag.String("log_format", "text", "log format: text or json")
	list        = flag.Bool("list", false, "list available profiles and exit")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] [input]\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Without -decode, -secret or -value input is a JSON payload.")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if err := setupLogging(*logLevel, *logFormat); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(); err != nil {
		log.WithError(err).Errorln("paramcodec failed")
		os.Exit(1)
	}
}

func setupLogging(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)

	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

func loadProfile() (*paramcodec.Profile, error) {
	if *configPath != "" {
		profiles, err := paramcodec.LoadProfilesFile(*configPath)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"path": *configPath, "count": len(profiles)}).Debugln("Loaded profiles")
		if p, ok := profiles[*profileName]; ok {
			return p, nil
		}
	}
	return paramcodec.LookupProfile(*profileName)
}

func listProfiles() error {
	names := paramcodec.Profiles()
	if *configPath != "" {
		profiles, err := paramcodec.LoadProfilesFile(*configPath)
		if err != nil {
			return err
		}
		for name := range profiles {
			names = append(names, name)
		}
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// readInput returns the positional argument or, failing that, stdin.
func readInput() (string, error) {
	if flag.NArg() > 1 {
		return "", errors.New("too many arguments")
	}
	if flag.NArg() == 1 {
		return flag.Arg(0), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no input: pass it as an argument or pipe it to stdin")
	}
	data, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func run() error {
	if *list {
		return listProfiles()
	}

	modes := 0
	for _, set := range []bool{*decode, *secret, *value} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return errors.New("-decode, -secret and -value are mutually exclusive")
	}

	p, err := loadProfile()
	if err != nil {
		return err
	}
	client, err := paramcodec.NewClient(&paramcodec.Config{
		Profile: *p,
		Logger:  log.NewEntry(log.StandardLogger()),
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"profile":  p.Name,
		"request":  client.Request().String(),
		"response": client.Response().String(),
	}).Debugln("Client ready")

	input, err := readInput()
	if err != nil {
		return err
	}

	var out string
	switch {
	case *decode:
		out, err = client.DecodeResult(input)
	case *secret:
		out = client.EncodeSecret(*method, input)
	case *value:
		out, err = client.EncodeValue(input)
	default:
		if !json.Valid([]byte(input)) {
			return fmt.Errorf("payload is not valid JSON: %q", input)
		}
		out, err = client.EncodeParam(*method, json.RawMessage(input))
	}
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}
