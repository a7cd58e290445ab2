//go:build governance

package ast_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/starfold-labs/starfold"

// TestGovernance_GrammarCohesion verifies that the exported grammar
// types are genuinely shared across packages. A node type used by only
// one consumer does not belong in the shared catalog.
func TestGovernance_GrammarCohesion(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	astDefs := make(map[types.Object]string)
	var astPkg *packages.Package

	for _, p := range pkgs {
		if p.PkgPath == modulePath+"/pkg/ast" {
			astPkg = p
			scope := p.Types.Scope()
			for _, name := range scope.Names() {
				obj := scope.Lookup(name)
				if obj.Exported() {
					astDefs[obj] = name
				}
			}
			break
		}
	}

	if astPkg == nil {
		t.Fatal("Could not find pkg/ast")
	}

	usageMap := make(map[string]map[string]bool)
	for _, name := range astDefs {
		usageMap[name] = make(map[string]bool)
	}

	base := modulePath + "/"

	for _, p := range pkgs {
		if p.PkgPath == astPkg.PkgPath || strings.HasSuffix(p.PkgPath, "_test") {
			continue
		}
		if p.TypesInfo == nil {
			continue
		}

		for _, info := range p.TypesInfo.Uses {
			if name, exists := astDefs[info]; exists {
				importer := strings.TrimPrefix(p.PkgPath, base)
				usageMap[name][importer] = true
			}
		}
	}

	for typeName, importers := range usageMap {
		if isCohesionAllowlisted(typeName) {
			continue
		}

		if len(importers) == 0 {
			t.Logf("WARNING: Unused grammar export: %s (consider deleting)", typeName)
		} else if len(importers) == 1 {
			var user string
			for k := range importers {
				user = k
			}
			t.Errorf("COHESION VIOLATION: 'ast.%s' is used ONLY by '%s'.\n"+
				"   Fix: Move it from pkg/ast to %s.",
				typeName, user, user)
		}
	}
}

// isCohesionAllowlisted returns true for exports allowed single usage.
func isCohesionAllowlisted(name string) bool {
	allowlist := map[string]bool{
		"Fprint": true, // debug printer - only the dump command renders trees
		"Sprint": true,
		"Walk":   true, // traversal helper for tooling
	}
	return allowlist[name]
}

// TestGovernance_NoGrammarAliasReexports ensures no package re-exports
// grammar node types as aliases. Consumers name nodes as ast.X so the
// catalog stays the single definition site.
func TestGovernance_NoGrammarAliasReexports(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	grammarTypes := map[string]bool{
		"Node": true, "Stmt": true, "Expr": true,
		"Module": true, "FunctionDef": true, "Block": true,
		"Return": true, "Assign": true, "ExprStmt": true,
		"For": true, "While": true, "If": true,
		"Pass": true, "Break": true, "Continue": true,
		"BoolOp": true, "BinOp": true, "UnaryOp": true, "Compare": true,
		"Call": true, "Num": true, "Str": true, "Bytes": true,
		"NameConstant": true, "Ident": true, "List": true, "Tuple": true,
		"ListComp": true, "Comprehension": true,
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 || pkg.PkgPath == modulePath+"/pkg/ast" {
			continue
		}

		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}

			if typeName, ok := obj.(*types.TypeName); ok {
				if typeName.IsAlias() && grammarTypes[name] {
					t.Errorf("PURITY VIOLATION: Package '%s' re-exports grammar alias '%s'.\n"+
						"   Fix: Remove the alias. Consumers should use ast.%s directly.",
						strings.TrimPrefix(pkg.PkgPath, modulePath+"/"), name, name)
				}
			}
		}
	}
}
