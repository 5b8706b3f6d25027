// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jinja renders Jinja templates compiled to Go.
//
// A compiler translates each Jinja template to a Go function with the
// Compiled signature. The function writes the literal text of the template
// and calls the runtime package for conditions, loops and escaping and the
// environment for the filters and the globals. For example the template
//
//    <p>{{ name|capitalize }}</p>
//
// is compiled to
//
//    func(env *jinja.Env, ctx *runtime.Map, include jinja.Resolver) (string, error) {
//        var b strings.Builder
//        b.WriteString("<p>")
//        v, err := env.Filter("capitalize", ctx.Get("name"))
//        if err != nil {
//            return "", err
//        }
//        b.WriteString(runtime.Escape(v))
//        b.WriteString("</p>")
//        return b.String(), nil
//    }
//
// Compiled templates are added to a Set, that renders them and resolves the
// templates they include:
//
//    set := jinja.NewSet(nil)
//    err := set.Add("index.jinja", "v1.0.0", index)
//    ...
//    s, err := set.RenderString("index.jinja", runtime.NewMap("name", "jon"))
//
// The environment of the set can be extended with filters and globals
// before the first render:
//
//    env := set.Env()
//    env.Filters.Register("reverse", reverse)
//    env.Globals["site"] = "example.com"
//
package jinja

// ABIVersion is the version of the interface between compiled templates and
// the runtime. A template compiled for version v can be added to a Set if v
// has the same major version and is not greater than ABIVersion.
const ABIVersion = "v1.0.0"
