package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the visitor:
// - Extract plain, aliased and from-style Python imports
// - Extract relative Python imports (bare and dotted)
// - Extract R library()/require() calls and :: qualifiers
// - Extract Go import specs (single, grouped, aliased, blank)
// - Extract Rust use declarations including use lists and extern crate
// - Extract JS/TS import, re-export, require() and dynamic import()
// - Skip require(variable) calls with no static name
// - Extract C system and quoted includes with the right relative flag
// - Extract Java imports including static and wildcard forms
// - Extract PHP use declarations and require/include expressions
// - Extract Ruby require/gem/require_relative calls
// - Find imports nested inside functions and conditionals
// - Return no specifiers for sources without imports

func parseAndVisit(t *testing.T, l Language, source string) []RawSpecifier {
	t.Helper()
	src := []byte(source)
	tree, err := Parse(l, src)
	require.NoError(t, err)
	defer tree.Close()

	specs, err := Visit(tree.RootNode(), l, src)
	require.NoError(t, err)
	return specs
}

// canonicalNames normalizes each specifier, mirroring what the extractor does.
func canonicalNames(specs []RawSpecifier) []string {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, Normalize(s).Name)
	}
	return names
}

func TestVisit_Python(t *testing.T) {
	t.Parallel()

	source := `
import os
import os.path
import numpy as np
from collections import OrderedDict
from . import helpers
from .sibling import thing
`
	specs := parseAndVisit(t, Python, source)
	assert.Equal(t, []string{"os", "os", "numpy", "collections", ".", "sibling"}, canonicalNames(specs))

	require.Len(t, specs, 6)
	assert.Equal(t, KindPlain, specs[0].Kind)
	assert.Equal(t, KindAliased, specs[2].Kind)
	assert.Equal(t, KindFrom, specs[3].Kind)
	assert.Equal(t, KindRelative, specs[4].Kind)
	assert.True(t, specs[4].Relative)
	assert.True(t, specs[5].Relative)
	assert.False(t, specs[3].Relative)
}

func TestVisit_PythonNestedImport(t *testing.T) {
	t.Parallel()

	source := `
def lazy():
    if True:
        import json
    return json
`
	specs := parseAndVisit(t, Python, source)
	assert.Equal(t, []string{"json"}, canonicalNames(specs))
}

func TestVisit_R(t *testing.T) {
	t.Parallel()

	source := `
library(ggplot2)
require(dplyr)
requireNamespace("jsonlite")
tidyr::pivot_longer(df)
`
	specs := parseAndVisit(t, R, source)
	assert.Equal(t, []string{"ggplot2", "dplyr", "jsonlite", "tidyr"}, canonicalNames(specs))
	assert.Equal(t, KindDynamic, specs[0].Kind)
	assert.Equal(t, KindPlain, specs[3].Kind)
}

func TestVisit_Go(t *testing.T) {
	t.Parallel()

	source := `package main

import "fmt"

import (
	"net/http"
	runtimepprof "runtime/pprof"
	_ "embed"
)
`
	specs := parseAndVisit(t, Go, source)
	assert.Equal(t, []string{"fmt", "net/http", "runtime/pprof", "embed"}, canonicalNames(specs))
}

func TestVisit_Rust(t *testing.T) {
	t.Parallel()

	source := `
use std::collections::HashMap;
use serde::{Serialize, Deserialize};
use tokio::sync::mpsc as channel;
use crate::config::Settings;
extern crate rand;
`
	specs := parseAndVisit(t, Rust, source)
	assert.Equal(t, []string{"std", "serde", "tokio", ".", "rand"}, canonicalNames(specs))

	crateSpec := specs[3]
	assert.True(t, crateSpec.Relative)
}

func TestVisit_RustUseListRoots(t *testing.T) {
	t.Parallel()

	specs := parseAndVisit(t, Rust, "use {anyhow::Result, thiserror::Error};\n")
	assert.Equal(t, []string{"anyhow", "thiserror"}, canonicalNames(specs))
}

func TestVisit_JavaScript(t *testing.T) {
	t.Parallel()

	source := `
import React from 'react';
import './styles.css';
export { helper } from './lib/helper';
export const local = 1;
const lodash = require('lodash');
const dynamic = await import('chalk');
`
	specs := parseAndVisit(t, JavaScript, source)
	assert.Equal(t, []string{"react", "styles", "lib", "lodash", "chalk"}, canonicalNames(specs))
}

func TestVisit_JavaScriptNonLiteralRequire(t *testing.T) {
	t.Parallel()

	specs := parseAndVisit(t, JavaScript, "const mod = require(pickModule());\n")
	assert.Empty(t, specs)
}

func TestVisit_TypeScript(t *testing.T) {
	t.Parallel()

	source := `
import type { Config } from '@company/config';
import { api } from 'node:http';
`
	specs := parseAndVisit(t, TypeScript, source)
	assert.Equal(t, []string{"@company/config", "http"}, canonicalNames(specs))
}

func TestVisit_TSX(t *testing.T) {
	t.Parallel()

	source := `
import React from 'react';

export function App() {
	return <div>hello</div>;
}
`
	specs := parseAndVisit(t, TSX, source)
	assert.Equal(t, []string{"react"}, canonicalNames(specs))
}

func TestVisit_C(t *testing.T) {
	t.Parallel()

	source := `
#include <stdio.h>
#include <sys/types.h>
#include "local.h"

int main(void) { return 0; }
`
	specs := parseAndVisit(t, C, source)
	assert.Equal(t, []string{"stdio.h", "sys/types.h", "local.h"}, canonicalNames(specs))
	assert.False(t, specs[0].Relative)
	assert.True(t, specs[2].Relative)
}

func TestVisit_Java(t *testing.T) {
	t.Parallel()

	source := `
import java.util.List;
import static org.junit.Assert.assertEquals;
import com.example.models.*;

public class Main {}
`
	specs := parseAndVisit(t, Java, source)
	assert.Equal(t, []string{"java", "org", "com"}, canonicalNames(specs))
}

func TestVisit_PHP(t *testing.T) {
	t.Parallel()

	source := `<?php
use Monolog\Logger;
use Symfony\Component\HttpFoundation\{Request, Response};
require 'bootstrap.php';
require_once __DIR__ . '/vendor/autoload.php';
include 'helpers.php';
`
	specs := parseAndVisit(t, PHP, source)
	names := canonicalNames(specs)
	assert.Contains(t, names, "Monolog")
	assert.Contains(t, names, "Symfony")
	assert.Contains(t, names, "bootstrap")
	assert.Contains(t, names, "helpers")

	for _, s := range specs {
		if s.Kind == KindDynamic {
			assert.True(t, s.Relative)
		}
	}
}

func TestVisit_Ruby(t *testing.T) {
	t.Parallel()

	source := `
require "json"
require "active_support/core_ext"
gem "rails"
require_relative "helpers/format"
`
	specs := parseAndVisit(t, Ruby, source)
	assert.Equal(t, []string{"json", "active_support", "rails", "helpers"}, canonicalNames(specs))
	assert.True(t, specs[3].Relative)
	assert.False(t, specs[0].Relative)
}

func TestVisit_NoImports(t *testing.T) {
	t.Parallel()

	specs := parseAndVisit(t, Python, "x = 1\nprint(x)\n")
	assert.Empty(t, specs)
}

func TestVisit_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	_, err := Visit(nil, Language("cobol"), nil)
	assert.Error(t, err)
}
