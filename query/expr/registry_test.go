// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expr

import (
	"context"
	"testing"

	"github.com/ebay/sparqlcore/config"
	"github.com/ebay/sparqlcore/rdf/value"
	"github.com/ebay/sparqlcore/util/debuglog"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doubleIRI = "http://example.com/fn#double"

func double(ctx context.Context, env *Env, args []*value.Value) (*value.Value, error) {
	if len(args) != 1 {
		return nil, value.Errorf("double takes 1 argument, got %d", len(args))
	}
	return value.Multiply(args[0], value.NewInteger(2))
}

func Test_ExtensionFunction(t *testing.T) {
	env := NewEnv(nil)
	env.Registry.Register(doubleIRI, double)
	ctx := context.Background()
	v, err := Eval(ctx, NewExtension(doubleIRI, NewVar("x")), testBinding(), env)
	require.NoError(t, err)
	assert.Equal(t, xsdInt("2"), v.String())
	_, err = Eval(ctx, NewExtension(doubleIRI), testBinding(), env)
	assert.EqualError(t, err, "double takes 1 argument, got 0")
	_, err = Eval(ctx, NewExtension(doubleIRI, NewVar("nope")), testBinding(), env)
	assert.EqualError(t, err, "unbound variable ?nope")

	fn, _, _ := CallOf(NewExtension(doubleIRI))
	assert.True(t, fn.IsExtension())
	assert.True(t, fn.NoFold)
	assert.True(t, fn.Variadic())
}

func Test_UnknownFunctionPolicy(t *testing.T) {
	hook := debuglog.Capture(t, log.InfoLevel)
	ctx := context.Background()
	e := NewExtension("http://example.com/missing", integer(1))

	tests := []struct {
		policy  config.UnknownFunctionPolicy
		expLogs int
	}{
		{"", 1},
		{config.UnknownFunctionWarn, 1},
		{config.UnknownFunctionFail, 0},
		{config.UnknownFunctionSilent, 0},
	}
	for _, test := range tests {
		t.Run(string(test.policy), func(t *testing.T) {
			hook.Reset()
			env := NewEnv(&config.Evaluation{UnknownFunctionPolicy: test.policy})
			for i := 0; i < 3; i++ {
				_, err := Eval(ctx, e, EmptyBinding, env)
				assert.EqualError(t, err, "unknown function <http://example.com/missing>")
				assert.True(t, value.IsEvalError(err))
				assert.False(t, IsSatisfied(ctx, e, EmptyBinding, env))
			}
			if assert.Len(t, hook.AllEntries(), test.expLogs) && test.expLogs > 0 {
				entry := hook.LastEntry()
				assert.Equal(t, log.WarnLevel, entry.Level)
				assert.Equal(t, "http://example.com/missing", entry.Data["function"])
			}
		})
	}
}

func Test_RegisterAfterMiss(t *testing.T) {
	env := NewEnv(nil)
	e := NewExtension(doubleIRI, integer(4))
	_, err := Eval(context.Background(), e, EmptyBinding, env)
	assert.True(t, isUnknownFunction(err))
	env.Registry.Register(doubleIRI, double)
	v, err := Eval(context.Background(), e, EmptyBinding, env)
	require.NoError(t, err)
	assert.Equal(t, xsdInt("8"), v.String())
}

func Test_CheckFunctions(t *testing.T) {
	reg := NewRegistry()
	reg.Register(doubleIRI, double)
	ok := call("&&", NewExtension(doubleIRI, NewVar("x")), call("BOUND", NewVar("y")))
	assert.NoError(t, CheckFunctions(ok, reg))
	bad := call("&&", ok, call("!", NewExtension("http://example.com/missing")))
	err := CheckFunctions(bad, reg)
	assert.EqualError(t, err, "unknown function <http://example.com/missing>")
	assert.Error(t, CheckFunctions(ok, nil))
}
