package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a parsed scenario file.
type File struct {
	// Name labels the scenario in output. Defaults to the file path.
	Name string `yaml:"name,omitempty"`

	// Types are type declarations in source form, processed in order:
	//
	//   - class Animal
	//   - class Dog : Animal
	//   - interface IBox<out T>
	//   - delegate Mapper<T, R>(T value) R
	Types []string `yaml:"types,omitempty"`

	// Methods are generic method signatures, e.g. "M<T>(T a, T b) T".
	Methods []string `yaml:"methods"`

	// Calls are the call sites to infer.
	Calls []Call `yaml:"calls"`
}

// Call is one call site.
type Call struct {
	// Method names a declared method.
	Method string `yaml:"method"`

	// Args are the call arguments, in order.
	Args []Arg `yaml:"args"`

	// Expect is the expected outcome; omitted means "just print".
	Expect *Expect `yaml:"expect,omitempty"`
}

// Arg is one argument. Exactly one of Type, Null, Lambda, Group or Tuple
// should be set.
type Arg struct {
	// Type is the type of an ordinary typed expression.
	Type string `yaml:"type,omitempty"`

	// Null marks a typeless null argument.
	Null bool `yaml:"null,omitempty"`

	Lambda *LambdaArg `yaml:"lambda,omitempty"`

	// Group lists the signatures of the method-group candidates.
	Group []string `yaml:"group,omitempty"`

	// Tuple holds the elements of a tuple literal; Names optionally
	// labels them.
	Tuple []Arg    `yaml:"tuple,omitempty"`
	Names []string `yaml:"names,omitempty"`
}

// LambdaArg describes an anonymous-function argument.
type LambdaArg struct {
	// Params are explicit parameter types. Leave empty for an implicitly
	// typed lambda and set Count instead.
	Params []string `yaml:"params,omitempty"`

	// Count is the parameter count of an implicitly typed lambda.
	Count int `yaml:"count,omitempty"`

	// Returns is the type the body evaluates to, independent of the
	// parameter types ((x) => x.ToString() returns string). Empty means
	// the body has no inferable return type.
	Returns string `yaml:"returns,omitempty"`

	// ReturnsParam selects a parameter whose type the body returns
	// ((x) => x), as a 1-based index. Zero means unused.
	ReturnsParam int `yaml:"returnsParam,omitempty"`
}

// Expect is the expected outcome of a call.
type Expect struct {
	OK *bool `yaml:"ok,omitempty"`

	// Inferred are the expected type arguments, printed form, in
	// declaration order of the type parameters.
	Inferred []string `yaml:"inferred,omitempty"`
}

// Load reads and parses a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = path
	}
	if err := validateNames(f.Types, f.Methods); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}
