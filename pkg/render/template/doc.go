// Package template defines the template-engine seam used to build the HTML
// documents handed to export backends (the PDF document shell and the batch
// page wrapper). Placeholder substitution does not go through this engine;
// it is plain token replacement in package render.
package template
