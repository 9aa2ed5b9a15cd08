// Command gen_vm_expects writes an expectVM* wrapper for every
//
//	func (vmt vmTestCase) expectFoo(...) vmTestCase
//
// builder method declared in the given test files, so that expectations can
// be bundled into helpers passed to vmTestCase.apply.
//
// Usage: go run ./scripts [-o output.go] file_test.go...
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

const (
	builderType  = "vmTestCase"
	expectPrefix = "expect"
	wrapPrefix   = "expectVM"
)

type expectParam struct {
	names    []string
	typ      string
	variadic bool
}

type expectMethod struct {
	what   string
	params []expectParam
}

func main() {
	outName := flag.String("o", "", "write generated code to this file, rather than stdout")
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatalln("usage: gen_vm_expects [-o output.go] file_test.go...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	methods, err := collect(ctx, flag.Args())
	if err != nil {
		log.Fatalln(err)
	}

	src, err := format.Source(render(flag.Args(), *outName, methods))
	if err != nil {
		log.Fatalf("gofmt generated code: %v", err)
	}

	if *outName == "" {
		_, err = os.Stdout.Write(src)
	} else {
		err = os.WriteFile(*outName, src, 0o644)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// collect parses every named file concurrently, returning their expect
// methods in argument, then declaration, order.
func collect(ctx context.Context, names []string) ([]expectMethod, error) {
	eg, ctx := errgroup.WithContext(ctx)
	found := make([][]expectMethod, len(names))
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			methods, err := parseExpects(name)
			found[i] = methods
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []expectMethod
	for _, methods := range found {
		all = append(all, methods...)
	}
	return all, nil
}

func parseExpects(name string) ([]expectMethod, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, name, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	var methods []expectMethod
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !isBuilderMethod(fn) || !strings.HasPrefix(fn.Name.Name, expectPrefix) {
			continue
		}
		if fn.Type.Params.NumFields() == 0 {
			continue
		}
		method := expectMethod{what: strings.TrimPrefix(fn.Name.Name, expectPrefix)}
		for _, field := range fn.Type.Params.List {
			param := expectParam{typ: types.ExprString(field.Type)}
			if ell, ok := field.Type.(*ast.Ellipsis); ok {
				param.typ = types.ExprString(ell.Elt)
				param.variadic = true
			}
			for _, id := range field.Names {
				param.names = append(param.names, id.Name)
			}
			method.params = append(method.params, param)
		}
		methods = append(methods, method)
	}
	return methods, nil
}

// isBuilderMethod matches a value receiver method of the builder type that
// returns the builder type.
func isBuilderMethod(fn *ast.FuncDecl) bool {
	if fn.Recv == nil || len(fn.Recv.List) != 1 {
		return false
	}
	if id, ok := fn.Recv.List[0].Type.(*ast.Ident); !ok || id.Name != builderType {
		return false
	}
	results := fn.Type.Results
	if results.NumFields() != 1 {
		return false
	}
	id, ok := results.List[0].Type.(*ast.Ident)
	return ok && id.Name == builderType
}

func render(inputs []string, outName string, methods []expectMethod) []byte {
	var buf bytes.Buffer
	buf.WriteString("package main\n\n")
	fmt.Fprintf(&buf, "// @generated from %v\n\n", strings.Join(inputs, ", "))
	if outName != "" {
		fmt.Fprintf(&buf, "//go:generate go run ./scripts -o %v %v\n\n", outName, strings.Join(inputs, " "))
	}
	for _, method := range methods {
		writeWrapper(&buf, method)
	}
	return buf.Bytes()
}

func writeWrapper(buf *bytes.Buffer, method expectMethod) {
	var decl, call []string
	for _, param := range method.params {
		typ := param.typ
		if param.variadic {
			typ = "..." + typ
		}
		decl = append(decl, strings.Join(param.names, ", ")+" "+typ)
		for _, name := range param.names {
			if param.variadic {
				name += "..."
			}
			call = append(call, name)
		}
	}
	fmt.Fprintf(buf, "func %v%v(%v) func(%v) %v {\n",
		wrapPrefix, method.what, strings.Join(decl, ", "), builderType, builderType)
	fmt.Fprintf(buf, "\treturn func(vmt %v) %v {\n", builderType, builderType)
	fmt.Fprintf(buf, "\t\treturn vmt.%v%v(%v)\n", expectPrefix, method.what, strings.Join(call, ", "))
	buf.WriteString("\t}\n}\n\n")
}
