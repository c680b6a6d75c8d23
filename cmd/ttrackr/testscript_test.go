package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/balkashynov/ttrackr/internal/testsupport"
)

func TestTaskScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/tasks",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}

func TestTrackingScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/tracking",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"autodone": testsupport.CmdSetAutodone,
			"sleep":    testsupport.CmdSleep,
		},
	})
}

func TestVersionScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/version",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}
