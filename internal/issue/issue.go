// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	RootNotFoundId Id = iota + 1
	RootNotDirectoryId
	PermissionDeniedId
	MetadataReadFailedId
	ConfigLoadFailedId
	ManifestInvalidId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

// String returns the name used by `dirtags explain`.
func (id Id) String() string {
	switch id {
	case RootNotFoundId:
		return "root-not-found"
	case RootNotDirectoryId:
		return "root-not-directory"
	case PermissionDeniedId:
		return "permission-denied"
	case MetadataReadFailedId:
		return "metadata-read-failed"
	case ConfigLoadFailedId:
		return "config-load-failed"
	case ManifestInvalidId:
		return "manifest-invalid"
	default:
		return "unknown"
	}
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Title returns the text of the first Markdown heading, without the
// trailing exclamation mark.
func (i *Issue) Title() string {
	for line := range strings.Lines(string(i.mdMsg)) {
		if heading, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSuffix(heading, "!")
		}
	}
	return i.id.String()
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the given glamour
// style ("dark", "light", "auto" or a path to a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))

	links := append(i.DocLinks(), i.ExtLinks()...)
	if len(links) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range links {
			md.WriteString("\n- [" + string(link) + "](" + string(link) + ")")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	rootNotFoundIssue = &Issue{
		id: RootNotFoundId,
		mdMsg: `
# Directory not found!

The directory you asked dirtags to list does not exist.

## Things you can try:
- Check the path for typos
- Pass the directory explicitly:
~~~
$ dirtags /path/to/directory
~~~

- Check the ` + "`root`" + ` value in your config file:
~~~
$ dirtags config show
~~~`,
	}

	rootNotDirectoryIssue = &Issue{
		id: RootNotDirectoryId,
		mdMsg: `
# Not a directory!

dirtags lists the direct children of a directory, but the path points to a file.

## Things you can try:
- Pass the parent directory instead
- Check the ` + "`root`" + ` value in your config file`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to read this directory or its entries.

## Things you can try:
- Check the directory permissions:
~~~
$ ls -ld /path/to/directory
~~~

- Run dirtags as a user that can read the directory`,
	}

	metadataReadFailedIssue = &Issue{
		id: MetadataReadFailedId,
		mdMsg: `
# Failed to read tags!

The tag attribute of a file could not be read.

## Where tags come from:
Tags are read from the extended attribute ` + "`user.xdg.tags`" + ` (comma separated).
The attribute name and separator can be changed in the config file:
~~~cue
tags: {
	xattr_name: "user.xdg.tags"
	separator:  ","
}
~~~

## Things you can try:
- Inspect the attribute with ` + "`getfattr -n user.xdg.tags <file>`" + `
- Check that the file still exists and is readable`,
		extLinks: []HttpLink{"https://www.freedesktop.org/wiki/CommonExtendedAttributes/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your dirtags configuration file could not be loaded.

## Things you can try:
- Check the file for CUE syntax errors
- Compare it with the defaults:
~~~
$ dirtags config dump
~~~

- Recreate a default configuration:
~~~
$ dirtags config init
~~~`,
	}

	manifestInvalidIssue = &Issue{
		id: ManifestInvalidId,
		mdMsg: `
# Invalid listing manifest!

The manifest passed with --manifest could not be parsed.

## Expected structure:
~~~cue
root: "/data"
entries: [
	{name: "report.txt", tags: ["draft", "q3"]},
	{name: "Archive", is_dir: true},
	{name: "notes.txt"},  // no tags field: no metadata
]
~~~

## Things you can try:
- Check that every entry has a non-empty name
- Use a list of strings for tags`,
	}

	issues = map[Id]*Issue{
		rootNotFoundIssue.Id():       rootNotFoundIssue,
		rootNotDirectoryIssue.Id():   rootNotDirectoryIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
		metadataReadFailedIssue.Id(): metadataReadFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		manifestInvalidIssue.Id():    manifestInvalidIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	all := make([]*Issue, 0, len(issues))
	for _, is := range issues {
		all = append(all, is)
	}
	slices.SortFunc(all, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return all
}

// Lookup finds an issue by the name Id.String returns, or nil.
func Lookup(name string) *Issue {
	all := Values()
	if idx := slices.IndexFunc(all, func(is *Issue) bool { return is.id.String() == name }); idx >= 0 {
		return all[idx]
	}
	return nil
}

func Get(id Id) *Issue {
	return issues[id]
}
